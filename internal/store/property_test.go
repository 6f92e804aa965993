package store

import (
	"fmt"
	"reflect"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/wagnerlima/designdata-mcp/internal/models"
)

// op is one step of a generated mutation sequence.
type op struct {
	Kind   int
	Target int
	Other  int
}

func genOps() gopter.Gen {
	return gen.SliceOf(gen.Struct(reflect.TypeOf(op{}), map[string]gopter.Gen{
		"Kind":   gen.IntRange(0, 3),
		"Target": gen.IntRange(0, 4),
		"Other":  gen.IntRange(0, 2),
	}))
}

// Every deleted wireframe id is gone from every project's list, whatever
// the interleaving of adds, assignments and deletes.
func TestProperty_DeletedWireframeLeavesNoProjectReference(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("no project references a deleted wireframe", prop.ForAll(
		func(ops []op) bool {
			s := New()
			for i := range 3 {
				s.AddProject(project(fmt.Sprintf("p%d", i)))
			}

			for _, o := range ops {
				wid := fmt.Sprintf("w%d", o.Target)
				switch o.Kind {
				case 0:
					s.AddWireframe(wireframe(wid))
				case 1:
					s.AssignWireframe(fmt.Sprintf("p%d", o.Other), wid)
				case 2, 3:
					s.DeleteWireframe(wid)
					for _, p := range s.State().Projects {
						if slices.Contains(p.WireframeIDs, wid) {
							t.Logf("project %s still lists %s", p.ID, wid)
							return false
						}
					}
				}
			}

			// A wireframe id is listed by at most one project.
			owners := map[string]int{}
			for _, p := range s.State().Projects {
				for _, id := range p.WireframeIDs {
					owners[id]++
					if owners[id] > 1 {
						t.Logf("wireframe %s listed twice", id)
						return false
					}
				}
			}
			return true
		},
		genOps(),
	))

	properties.TestingRun(t)
}

// After any DeleteElement(w, e), no comment targets e.
func TestProperty_DeleteElementRemovesAllItsComments(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("no comment targets a deleted element", prop.ForAll(
		func(targets []int, victim int, inWireframe bool) bool {
			s := New()
			elems := make([]models.WireframeElement, 0, 5)
			for i := range 5 {
				elems = append(elems, element(fmt.Sprintf("e%d", i), "label"))
			}
			s.AddWireframe(wireframe("w1", elems...))
			for i, tgt := range targets {
				s.AddComment(comment(fmt.Sprintf("c%d", i), fmt.Sprintf("e%d", tgt)))
			}

			wid := "w1"
			if !inWireframe {
				wid = "w-missing"
			}
			eid := fmt.Sprintf("e%d", victim)
			s.DeleteElement(wid, eid)

			for _, c := range s.State().Comments {
				if c.ElementID == eid {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 5)),
		gen.IntRange(0, 5),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
