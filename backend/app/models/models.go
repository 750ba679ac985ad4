package models

// All returns every model managed by AutoMigrate, parents first.
func All() []any {
	return []any{&User{}, &QuickLink{}, &SearchEngine{}, &SearchHistory{}}
}
