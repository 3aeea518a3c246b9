package entity

// Setting is a display configuration key/value pair.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

const (
	SettingHeroTitle    = "heroTitle"
	SettingHeroSubtitle = "heroSubtitle"
)

// DefaultSettings are seeded by schema initialization when missing.
func DefaultSettings() []Setting {
	return []Setting{
		{Key: SettingHeroTitle, Value: "Bem vindo"},
		{Key: SettingHeroSubtitle, Value: "Obras de arte que transformam ambientes."},
	}
}
