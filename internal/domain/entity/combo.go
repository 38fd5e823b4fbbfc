package entity

import "time"

// Combo representa un paquete (kit) de productos que se vende como una unidad.
type Combo struct {
	ID        int64
	Name      string
	Items     []ComboItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComboItem producto incluido en un combo con la cantidad requerida por unidad de combo.
type ComboItem struct {
	ID          int64
	ComboID     int64
	ProductID   int64
	Quantity    int
	ProductName string // denormalizado en lecturas con JOIN a products
}

// AddItem agrega un producto al combo. Si el producto ya existe, reemplaza la cantidad.
func (c *Combo) AddItem(productID int64, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
	c.Items = append(c.Items, ComboItem{ComboID: c.ID, ProductID: productID, Quantity: quantity})
}

// RemoveItem quita un producto del combo si está presente.
func (c *Combo) RemoveItem(productID int64) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Rename cambia el nombre del combo.
func (c *Combo) Rename(name string) {
	c.Name = name
}
