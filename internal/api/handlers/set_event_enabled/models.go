package set_event_enabled

// Request тело запроса переключения приема заявок
type Request struct {
	Enabled *bool `json:"enabled"`
}
