package entity

// Dataset is the whole logical data set. It is the backup document format and
// the in-memory state of the json backend.
type Dataset struct {
	Users        []User        `json:"users"`
	Products     []Product     `json:"products"`
	Cart         []CartItem    `json:"cart"`
	Analytics    []ProductView `json:"analytics"`
	Sales        []Sale        `json:"sales"`
	CustomOrders []CustomOrder `json:"custom_orders"`
	Settings     []Setting     `json:"app_settings"`
}

// Normalize replaces nil collections with empty ones so the document always
// carries every key.
func (d *Dataset) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Products == nil {
		d.Products = []Product{}
	}
	if d.Cart == nil {
		d.Cart = []CartItem{}
	}
	if d.Analytics == nil {
		d.Analytics = []ProductView{}
	}
	if d.Sales == nil {
		d.Sales = []Sale{}
	}
	if d.CustomOrders == nil {
		d.CustomOrders = []CustomOrder{}
	}
	if d.Settings == nil {
		d.Settings = []Setting{}
	}
}

// Clone copies every collection deeply enough that no record of the copy
// shares memory with d.
func (d *Dataset) Clone() Dataset {
	out := Dataset{
		Users:        append([]User{}, d.Users...),
		Products:     append([]Product{}, d.Products...),
		Cart:         append([]CartItem{}, d.Cart...),
		Analytics:    append([]ProductView{}, d.Analytics...),
		Sales:        make([]Sale, 0, len(d.Sales)),
		CustomOrders: make([]CustomOrder, 0, len(d.CustomOrders)),
		Settings:     append([]Setting{}, d.Settings...),
	}
	for _, s := range d.Sales {
		out.Sales = append(out.Sales, s.Clone())
	}
	for _, o := range d.CustomOrders {
		out.CustomOrders = append(out.CustomOrders, o.Clone())
	}
	return out
}
