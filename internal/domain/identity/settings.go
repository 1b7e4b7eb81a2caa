package identity

// SettingsNode holds application-wide settings
const SettingsNode = "diversey_settings"

// BaseCollections are created empty when a database is seeded
var BaseCollections = []string{
	"diversey_export_files",
	"diversey_export_log",
	"diversey_fornecedores",
	"diversey_pecas",
	"diversey_recent_parts",
	"diversey_solicitacoes",
	"diversey_tecnicos",
	UsersCollection,
}

// Flags toggles optional application features
type Flags struct {
	ExportXlsx    bool `json:"exportXlsx"`
	ExportPdf     bool `json:"exportPdf"`
	LoteAprovacao bool `json:"loteAprovacao"`
}

// Sequence holds counters used to number documents
type Sequence struct {
	SolicitacaoNumero int64 `json:"solicitacaoNumero"`
}

// Settings is the settings document of a fresh database
type Settings struct {
	SLAHours int      `json:"slaHoras"`
	Currency string   `json:"moeda"`
	Theme    string   `json:"tema"`
	Flags    Flags    `json:"flags"`
	Sequence Sequence `json:"sequence"`
}

// DefaultSettings returns the settings written when none exist
func DefaultSettings() Settings {
	return Settings{
		SLAHours: 48,
		Currency: "BRL",
		Theme:    "light",
		Flags: Flags{
			ExportXlsx: true,
			ExportPdf:  true,
		},
	}
}
