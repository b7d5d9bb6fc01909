package dto

// Envelope is the success body shared by every endpoint.
type Envelope struct {
	Status  string `json:"status"`
	Token   string `json:"token,omitempty"`
	Results *int   `json:"results,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success wraps a single named resource, e.g. {"data":{"client":{...}}}.
func Success(name string, value any) Envelope {
	return Envelope{Status: "success", Data: map[string]any{name: value}}
}

// List wraps a collection and reports its length.
func List[T any](name string, items []T) Envelope {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return Envelope{Status: "success", Results: &n, Data: map[string]any{name: items}}
}

func mapAll[T, R any](items []T, fn func(*T) R) []R {
	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return out
}
