package space

import (
	"github.com/invopop/jsonschema"
)

// SerializedSpace is the typed shape of the embedded document, restricted to the
// parts this tool reads or writes. Other fields exist and are preserved by Document.
type SerializedSpace struct {
	Version     int         `json:"version,omitempty" jsonschema_description:"Document format version."`
	DataSources DataSources `json:"data_sources" jsonschema_description:"Data sources attached to the space."`
}

type DataSources struct {
	Tables []Table `json:"tables" jsonschema_description:"Tables the space can query."`
}

type Table struct {
	Identifier    string         `json:"identifier" jsonschema_description:"Fully qualified table name, e.g. catalog.schema.table."`
	ColumnConfigs []ColumnConfig `json:"column_configs,omitempty" jsonschema_description:"Per-column settings."`
}

type ColumnConfig struct {
	ColumnName  string   `json:"column_name" jsonschema_description:"Column name, matched exactly."`
	Description []string `json:"description,omitempty" jsonschema_description:"Description lines; new text is appended."`
}

// Tables returns a typed snapshot of data_sources.tables. Entries that are not
// objects are skipped and non-string description items are dropped.
func (d *Document) Tables() []Table {
	raw := d.tables()
	out := make([]Table, 0, len(raw))
	for _, t := range raw {
		id, _ := t["identifier"].(string)
		tbl := Table{Identifier: id}
		for _, c := range columnConfigs(t) {
			name, _ := c["column_name"].(string)
			cc := ColumnConfig{ColumnName: name}
			if list, ok := c["description"].([]any); ok {
				for _, e := range list {
					if s, ok := e.(string); ok {
						cc.Description = append(cc.Description, s)
					}
				}
			}
			tbl.ColumnConfigs = append(tbl.ColumnConfigs, cc)
		}
		out = append(out, tbl)
	}
	return out
}

// Schema derives a JSON Schema for SerializedSpace. Additional properties stay
// allowed because the real document carries far more than the typed view.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	return reflector.Reflect(&SerializedSpace{})
}
