package school

// Display fallbacks for fields missing from a record
const (
	FallbackName           = "Нет названия"
	FallbackRegion         = "Не указан"
	FallbackAddress        = "Адрес не указан"
	FallbackEducationLevel = "Не указан"
	FallbackStatus         = "Неизвестно"
)

// Row is the flattened, display-ready form of a Record
type Row struct {
	UUID           string `json:"uuid" yaml:"uuid"`
	Name           string `json:"name" yaml:"name"`
	Region         string `json:"region" yaml:"region"`
	Address        string `json:"address" yaml:"address"`
	EducationLevel string `json:"education_level" yaml:"education_level"`
	Status         string `json:"status" yaml:"status"`
}

// ToRow flattens a record. Each field falls back on its own, so a missing
// region never blanks the name or address.
func ToRow(r Record) Row {
	return Row{
		UUID:           r.UUID,
		Name:           orDefault(r.fullName(), FallbackName),
		Region:         orDefault(r.regionName(), FallbackRegion),
		Address:        orDefault(r.postAddress(), FallbackAddress),
		EducationLevel: orDefault(r.educationLevel(), FallbackEducationLevel),
		Status:         orDefault(r.statusName(), FallbackStatus),
	}
}

// ToRows flattens records keeping their order. A nil input yields an empty,
// non-nil slice.
func ToRows(records []Record) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, ToRow(r))
	}
	return rows
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
