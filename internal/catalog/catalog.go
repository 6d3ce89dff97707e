// Package catalog holds the static menu and table set served by the
// restaurant. The catalog is read-only; the core never mutates it.
package catalog

import "gourmet/internal/models"

var dishes = []models.Dish{
	{
		ID:          "1",
		Name:        "Phở Bò Truyền Thống",
		Description: "Nước dùng trong veo, thơm mùi hồi quế cùng thịt bò tươi thái mỏng.",
		Price:       65000,
		Category:    "Món nước",
		Image:       "https://picsum.photos/seed/pho/400/300",
	},
	{
		ID:          "2",
		Name:        "Bún Chả Hà Nội",
		Description: "Chả nướng than hoa vàng ươm ăn kèm nước chấm chua ngọt và bún tươi.",
		Price:       55000,
		Category:    "Món khô",
		Image:       "https://picsum.photos/seed/buncha/400/300",
	},
	{
		ID:          "3",
		Name:        "Cơm Tấm Sườn Bì Chả",
		Description: "Sườn nướng thơm lừng kết hợp cùng bì thính và chả trứng đậm đà.",
		Price:       45000,
		Category:    "Cơm",
		Image:       "https://picsum.photos/seed/comtam/400/300",
	},
	{
		ID:          "4",
		Name:        "Gỏi Cuốn Tôm Thịt",
		Description: "Món khai vị nhẹ nhàng với tôm tươi, thịt luộc và rau sống tươi mát.",
		Price:       35000,
		Category:    "Khai vị",
		Image:       "https://picsum.photos/seed/goicuon/400/300",
	},
	{
		ID:          "5",
		Name:        "Bánh Mì Đặc Biệt",
		Description: "Vỏ bánh giòn rụm với nhân pate, chả lụa, xá xíu và bơ trứng.",
		Price:       25000,
		Category:    "Ăn nhẹ",
		Image:       "https://picsum.photos/seed/banhmi/400/300",
	},
	{
		ID:          "6",
		Name:        "Cà Phê Muối",
		Description: "Vị mặn nhẹ của kem muối hòa quyện cùng vị đắng của cà phê pha phin.",
		Price:       30000,
		Category:    "Đồ uống",
		Image:       "https://picsum.photos/seed/cafe/400/300",
	},
}

// tables includes the takeaway sentinel "Mang về" as the last entry.
var tables = []string{"Bàn 01", "Bàn 02", "Bàn 03", "Bàn 04", "Bàn 05", "Bàn 06", "Mang về"}

// Dishes returns a copy of the full menu.
func Dishes() []models.Dish {
	out := make([]models.Dish, len(dishes))
	copy(out, dishes)
	return out
}

// DishByID looks up a dish by its identifier.
func DishByID(id string) (models.Dish, bool) {
	for _, d := range dishes {
		if d.ID == id {
			return d, true
		}
	}
	return models.Dish{}, false
}

// Tables returns a copy of the available table labels.
func Tables() []string {
	out := make([]string, len(tables))
	copy(out, tables)
	return out
}

// ValidTable reports whether label names a known table or the
// takeaway sentinel.
func ValidTable(label string) bool {
	for _, t := range tables {
		if t == label {
			return true
		}
	}
	return false
}
