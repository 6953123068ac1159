package model

// Item is one checklist entry. ID is assigned by the store on first insert;
// an unsaved item carries ID 0.
type Item struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Image       []byte  `json:"image,omitempty"`
	Purchased   bool    `json:"purchased"`
}

// Snapshot is the read-only view of an item handed to the delegation
// notifier. It deliberately excludes the image blob and the purchase flag.
type Snapshot struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

func (it Item) Snapshot() Snapshot {
	return Snapshot{Name: it.Name, Price: it.Price, Description: it.Description}
}
