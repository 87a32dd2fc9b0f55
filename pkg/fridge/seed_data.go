package fridge

type seedItem struct {
	Name       string
	Category   string
	Quantity   int
	ExpiryDays int // days from today; negative means already expired
	NoExpiry   bool
}

// seedItems is the sample data set inserted by the admin seed operation.
// It covers every category and includes expired, expiring-soon and
// no-expiry items so the filters have something to bite on.
var seedItems = []seedItem{
	{Name: "Chicken breasts", Category: "meat", Quantity: 2, ExpiryDays: 5},
	{Name: "Ground beef", Category: "meat", Quantity: 1, ExpiryDays: -1},
	{Name: "Pork chops", Category: "meat", Quantity: 4, ExpiryDays: 4},
	{Name: "Turkey slices", Category: "meat", Quantity: 1, ExpiryDays: 6},
	{Name: "Whole milk", Category: "dairy", Quantity: 1, ExpiryDays: 7},
	{Name: "Yogurt", Category: "dairy", Quantity: 4, ExpiryDays: 2},
	{Name: "Heavy cream", Category: "dairy", Quantity: 1, ExpiryDays: 5},
	{Name: "Butter", Category: "dairy", Quantity: 1, ExpiryDays: 14},
	{Name: "Strawberries", Category: "fruit", Quantity: 1, ExpiryDays: 3},
	{Name: "Apples", Category: "fruit", Quantity: 6, ExpiryDays: 12},
	{Name: "Lemons", Category: "fruit", Quantity: 3, ExpiryDays: 10},
	{Name: "Spinach", Category: "vegetable", Quantity: 1, ExpiryDays: 2},
	{Name: "Carrots", Category: "vegetable", Quantity: 8, ExpiryDays: 15},
	{Name: "Broccoli", Category: "vegetable", Quantity: 1, ExpiryDays: 4},
	{Name: "Sourdough loaf", Category: "bread", Quantity: 1, ExpiryDays: 3},
	{Name: "Bagels", Category: "bread", Quantity: 4, ExpiryDays: 5},
	{Name: "Cheddar", Category: "cheese", Quantity: 1, ExpiryDays: 20},
	{Name: "Mozzarella", Category: "cheese", Quantity: 2, ExpiryDays: 8},
	{Name: "Free range eggs", Category: "eggs", Quantity: 12, ExpiryDays: 18},
	{Name: "Orange juice", Category: "beverage", Quantity: 1, ExpiryDays: 6},
	{Name: "Oat milk", Category: "beverage", Quantity: 2, ExpiryDays: 30},
	{Name: "Mayonnaise", Category: "condiments", Quantity: 1, ExpiryDays: 60},
	{Name: "Ketchup", Category: "condiments", Quantity: 1, NoExpiry: true},
	{Name: "Green pesto", Category: "cooking sauces", Quantity: 1, ExpiryDays: 9},
	{Name: "Tikka masala sauce", Category: "cooking sauces", Quantity: 2, ExpiryDays: 45},
	{Name: "Sliced ham", Category: "deli", Quantity: 1, ExpiryDays: 3},
	{Name: "Chocolate mousse", Category: "desserts", Quantity: 2, ExpiryDays: 4},
	{Name: "Fresh basil", Category: "herbs", Quantity: 1, ExpiryDays: 2},
	{Name: "Leftover lasagne", Category: "leftovers", Quantity: 1, ExpiryDays: 1},
	{Name: "Chicken korma ready meal", Category: "prepared meals", Quantity: 1, ExpiryDays: 5},
	{Name: "Salmon fillets", Category: "seafood", Quantity: 2, ExpiryDays: 2},
	{Name: "Hummus", Category: "snacks", Quantity: 1, ExpiryDays: 6},
	{Name: "Baking soda", Category: "miscellaneous", Quantity: 1, NoExpiry: true},
}
