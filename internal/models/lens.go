package models

// Lens is a prescription-lens SKU tracked in stock.
//
// Spherical and cylindrical powers are stored as strings because they carry
// clinical notation ("-2.00", "+0.25") rather than plain numbers.
type Lens struct {
	BaseModel
	Name             string  `gorm:"not null" json:"nome"`
	Brand            string  `gorm:"not null" json:"marca"`
	SphericalPower   string  `gorm:"not null" json:"grau_esferico"`
	CylindricalPower string  `json:"grau_cilindrico"`
	Axis             string  `json:"eixo"`
	Quantity         int     `gorm:"not null" json:"quantidade"`
	Price            float64 `gorm:"not null" json:"preco"`
	Description      string  `json:"descricao"`
}
