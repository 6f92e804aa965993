package models

import "time"

// Project groups wireframes. Projects are session-scoped and never persisted.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	WireframeIDs []string  `json:"wireframeIds"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Wireframe is an imported design file. Its ID is the design file key.
type Wireframe struct {
	ID           string             `json:"id"`
	FigmaFileKey string             `json:"figmaFileKey"`
	ProjectID    string             `json:"projectId"`
	Name         string             `json:"name"`
	URL          string             `json:"url"`
	ImageURL     string             `json:"imageUrl,omitempty"`
	Elements     []WireframeElement `json:"elements"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// ElementType is the variant tag of a wireframe element.
type ElementType string

const (
	ElementComponent ElementType = "component"
	ElementContainer ElementType = "container"
	ElementInput     ElementType = "input"
	ElementButton    ElementType = "button"
)

// Position is a 2-D canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the optional extent of an element.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// WireframeElement is a single visual component inside a wireframe.
type WireframeElement struct {
	ID       string      `json:"id"`
	Type     ElementType `json:"type"`
	Position Position    `json:"position"`
	Size     *Size       `json:"size,omitempty"`
	Data     ElementData `json:"data"`
}

// ElementData carries the annotatable payload of an element.
type ElementData struct {
	Label       string       `json:"label"`
	Description string       `json:"description,omitempty"`
	DataLinks   []DataLink   `json:"dataLinks"`
	Tags        []string     `json:"tags,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Annotation is a positioned note pinned to an element.
type Annotation struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Position  Position  `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
}

// DataLink is a directed edge stored inside the element whose ID equals SourceID.
type DataLink struct {
	ID          string `json:"id"`
	SourceID    string `json:"sourceId"`
	TargetID    string `json:"targetId"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// DataLineage is a named transformation between two elements.
type DataLineage struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Source    string        `json:"source"`
	Target    string        `json:"target"`
	Schema    []SchemaField `json:"schema"`
	CreatedAt *time.Time    `json:"createdAt,omitempty"`
	CreatedBy string        `json:"createdBy,omitempty"`
}

// FieldType is the type tag of a schema field.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
	FieldDate    FieldType = "date"
	FieldObject  FieldType = "object"
	FieldArray   FieldType = "array"
)

// SchemaField is one typed attribute of a lineage schema.
type SchemaField struct {
	Name          string              `json:"name"`
	Type          FieldType           `json:"type"`
	Description   string              `json:"description"`
	Required      bool                `json:"required"`
	Constraints   *FieldConstraints   `json:"constraints,omitempty"`
	Relationships []FieldRelationship `json:"relationships,omitempty"`
}

// FieldConstraints are optional value restrictions on a schema field.
type FieldConstraints struct {
	Unique    bool     `json:"unique,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
}

// RelationshipType is the cardinality of a field relationship.
type RelationshipType string

const (
	OneToOne   RelationshipType = "oneToOne"
	OneToMany  RelationshipType = "oneToMany"
	ManyToOne  RelationshipType = "manyToOne"
	ManyToMany RelationshipType = "manyToMany"
)

// FieldRelationship points a schema field at a field of another table.
type FieldRelationship struct {
	Table string           `json:"table"`
	Field string           `json:"field"`
	Type  RelationshipType `json:"type"`
}

// Comment is attached to an element by ElementID but stored globally.
type Comment struct {
	ID        string    `json:"id"`
	ElementID string    `json:"elementId"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	Mentions  []string  `json:"mentions,omitempty"`
	Replies   []Comment `json:"replies,omitempty"`
}

// User is a collaborator profile.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// OpenMetadataConfig holds the connection settings of an OpenMetadata catalog.
type OpenMetadataConfig struct {
	Host     string `json:"host"`
	APIToken string `json:"apiToken"`
}

// ActiveView is the top-level view the user has focused.
type ActiveView string

const (
	ViewDashboard   ActiveView = "dashboard"
	ViewWireframes  ActiveView = "wireframes"
	ViewDataLineage ActiveView = "dataLineage"
	ViewSchema      ActiveView = "schema"
	ViewProfile     ActiveView = "profile"
	ViewSettings    ActiveView = "settings"
	ViewHelp        ActiveView = "help"
)
