package service

import (
	"time"

	"burger-house-api/models"

	"github.com/juju/errors"
	"github.com/shopspring/decimal"
)

// Default accounts created on first start
const (
	SeedAdminUsername = "admin"
	SeedAdminPassword = "admin123"
	SeedStaffUsername = "staff"
	SeedStaffPassword = "staff123"
	SeedMariaUsername = "maria"
	SeedMariaPassword = "maria123"
	SeedMariaCode     = "MG123456"
	SeedCarlosCode    = "CR654321"
)

type seedCustomer struct {
	username, password string
	profile            ProfileUpdate
	points             int
	code               string
}

var seedCustomers = []seedCustomer{
	{
		username: SeedMariaUsername,
		password: SeedMariaPassword,
		profile: ProfileUpdate{
			Name:       "María",
			Surname1:   "García",
			Surname2:   "López",
			NationalID: "12345678Z",
			Phone:      "+34 600 123 456",
			Email:      "maria@example.com",
		},
		points: 1250,
		code:   SeedMariaCode,
	},
	{
		username: "carlos",
		password: "carlos123",
		profile: ProfileUpdate{
			Name:     "Carlos",
			Surname1: "Ruiz",
			Phone:    "+34 600 654 321",
			Email:    "carlos@example.com",
		},
		points: 340,
		code:   SeedCarlosCode,
	},
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var seedMenu = []ProductInput{
	{
		Name:             "Classic Burger",
		ShortDescription: "Beef, cheddar, lettuce, tomato",
		LongDescription:  "180g grilled beef patty with aged cheddar, crisp lettuce, tomato and house sauce on a brioche bun.",
		Price:            price("9.99"),
		Category:         models.CategoryBurgers,
		ImageRef:         "burgers/classic.jpg",
		Ingredients:      []string{"beef", "cheddar", "lettuce", "tomato", "brioche bun", "house sauce"},
		Allergens:        []string{"gluten", "dairy", "egg"},
		Calories:         720,
		PrepTime:         12,
		Available:        true,
	},
	{
		Name:             "Bacon Deluxe",
		ShortDescription: "Double beef, bacon, smoked cheese",
		LongDescription:  "Two beef patties, crispy bacon, smoked gouda, caramelised onion and barbecue sauce.",
		Price:            price("11.99"),
		Category:         models.CategoryBurgers,
		ImageRef:         "burgers/bacon-deluxe.jpg",
		Ingredients:      []string{"beef", "bacon", "smoked gouda", "onion", "bbq sauce", "brioche bun"},
		Allergens:        []string{"gluten", "dairy", "mustard"},
		Calories:         1040,
		PrepTime:         15,
		Available:        true,
	},
	{
		Name:             "Chicken Crunch",
		ShortDescription: "Crispy chicken, slaw, spicy mayo",
		LongDescription:  "Buttermilk fried chicken thigh with red cabbage slaw and chipotle mayo.",
		Price:            price("10.49"),
		Category:         models.CategoryBurgers,
		ImageRef:         "burgers/chicken-crunch.jpg",
		Ingredients:      []string{"chicken", "cabbage", "carrot", "chipotle mayo", "potato bun"},
		Allergens:        []string{"gluten", "egg", "dairy"},
		Calories:         830,
		PrepTime:         14,
		Available:        true,
	},
	{
		Name:             "Veggie Garden",
		ShortDescription: "Chickpea patty, avocado, rocket",
		LongDescription:  "Spiced chickpea and beetroot patty with avocado, rocket and vegan aioli.",
		Price:            price("9.49"),
		Category:         models.CategoryBurgers,
		ImageRef:         "burgers/veggie-garden.jpg",
		Ingredients:      []string{"chickpeas", "beetroot", "avocado", "rocket", "vegan aioli", "wholemeal bun"},
		Allergens:        []string{"gluten", "sesame"},
		Calories:         610,
		PrepTime:         12,
		Available:        true,
	},
	{
		Name:             "Blue Cheese Burger",
		ShortDescription: "Beef, blue cheese, walnuts",
		LongDescription:  "Beef patty topped with creamy blue cheese, toasted walnuts and pear chutney.",
		Price:            price("12.49"),
		Category:         models.CategoryBurgers,
		ImageRef:         "burgers/blue-cheese.jpg",
		Ingredients:      []string{"beef", "blue cheese", "walnuts", "pear chutney", "brioche bun"},
		Allergens:        []string{"gluten", "dairy", "nuts"},
		Calories:         880,
		PrepTime:         15,
		Available:        false,
	},
	{
		Name:             "Fries",
		ShortDescription: "Hand-cut, sea salt",
		LongDescription:  "Hand-cut potatoes fried twice and finished with sea salt.",
		Price:            price("3.49"),
		Category:         models.CategorySides,
		ImageRef:         "sides/fries.jpg",
		Ingredients:      []string{"potato", "sunflower oil", "sea salt"},
		Calories:         380,
		PrepTime:         6,
		Available:        true,
	},
	{
		Name:             "Onion Rings",
		ShortDescription: "Beer-battered rings",
		LongDescription:  "Sweet onion rings in a light beer batter with smoky dip.",
		Price:            price("4.29"),
		Category:         models.CategorySides,
		ImageRef:         "sides/onion-rings.jpg",
		Ingredients:      []string{"onion", "flour", "beer", "smoky dip"},
		Allergens:        []string{"gluten", "egg"},
		Calories:         420,
		PrepTime:         7,
		Available:        true,
	},
	{
		Name:             "Chicken Wings",
		ShortDescription: "Six wings, buffalo sauce",
		LongDescription:  "Six crispy wings tossed in buffalo sauce with blue cheese dip.",
		Price:            price("6.99"),
		Category:         models.CategorySides,
		ImageRef:         "sides/wings.jpg",
		Ingredients:      []string{"chicken wings", "buffalo sauce", "blue cheese dip"},
		Allergens:        []string{"dairy", "celery"},
		Calories:         560,
		PrepTime:         10,
		Available:        true,
	},
	{
		Name:             "Cola",
		ShortDescription: "330ml can",
		LongDescription:  "Ice-cold cola.",
		Price:            price("2.20"),
		Category:         models.CategoryDrinks,
		ImageRef:         "drinks/cola.jpg",
		Ingredients:      []string{"carbonated water", "sugar", "caramel colour"},
		Calories:         139,
		Available:        true,
	},
	{
		Name:             "Craft Lemonade",
		ShortDescription: "Fresh lemons and mint",
		LongDescription:  "House-made lemonade with fresh lemons, mint and a touch of cane sugar.",
		Price:            price("3.50"),
		Category:         models.CategoryDrinks,
		ImageRef:         "drinks/lemonade.jpg",
		Ingredients:      []string{"lemon", "mint", "cane sugar", "water"},
		Calories:         120,
		PrepTime:         2,
		Available:        true,
	},
	{
		Name:             "Vanilla Milkshake",
		ShortDescription: "Thick and creamy",
		LongDescription:  "Madagascar vanilla ice cream blended with whole milk.",
		Price:            price("4.99"),
		Category:         models.CategoryDrinks,
		ImageRef:         "drinks/vanilla-shake.jpg",
		Ingredients:      []string{"vanilla ice cream", "milk"},
		Allergens:        []string{"dairy"},
		Calories:         540,
		PrepTime:         4,
		Available:        true,
	},
	{
		Name:             "Craft Beer",
		ShortDescription: "Local IPA, 330ml",
		LongDescription:  "Hoppy India pale ale from a local brewery.",
		Price:            price("4.50"),
		Category:         models.CategoryDrinks,
		ImageRef:         "drinks/ipa.jpg",
		Ingredients:      []string{"water", "barley malt", "hops", "yeast"},
		Allergens:        []string{"gluten"},
		Calories:         200,
		Available:        true,
	},
}

// seedAll fills an empty store: staff accounts, sample customers with
// their history, reviews and the full menu. Seeded orders do not award
// points; the seeded balances already include them.
func (s *Service) seedAll() error {
	if _, err := s.insertUser(SeedAdminUsername, SeedAdminPassword, models.RoleAdmin); err != nil {
		return errors.Annotate(err, "seeding admin")
	}
	if _, err := s.insertUser(SeedStaffUsername, SeedStaffPassword, models.RoleStaff); err != nil {
		return errors.Annotate(err, "seeding staff")
	}

	now := s.now()
	var customerIDs []int
	for _, sc := range seedCustomers {
		user, err := s.insertUser(sc.username, sc.password, models.RoleCustomer)
		if err != nil {
			return errors.Annotatef(err, "seeding customer %s", sc.username)
		}
		c := models.Customer{
			ID:               s.nextCustomerID,
			UserID:           user.ID,
			Name:             sc.profile.Name,
			Surname1:         sc.profile.Surname1,
			Surname2:         sc.profile.Surname2,
			NationalID:       sc.profile.NationalID,
			Phone:            sc.profile.Phone,
			Email:            sc.profile.Email,
			LoyaltyPoints:    sc.points,
			RegistrationDate: now.AddDate(0, -6, 0),
			UniqueCode:       sc.code,
		}
		s.nextCustomerID++
		s.customers = append(s.customers, c)
		customerIDs = append(customerIDs, c.ID)
	}

	s.seedOrder(customerIDs[0], now.AddDate(0, 0, -3), models.StatusDelivered, "Calle Mayor 12, Madrid",
		ItemInput{ProductName: "Classic Burger", Quantity: 2, UnitPrice: price("9.99")},
		ItemInput{ProductName: "Fries", Quantity: 2, UnitPrice: price("3.49")},
	)
	s.seedOrder(customerIDs[0], now.AddDate(0, 0, -1), models.StatusDelivered, "Calle Mayor 12, Madrid",
		ItemInput{ProductName: "Bacon Deluxe", Quantity: 1, UnitPrice: price("11.99")},
		ItemInput{ProductName: "Craft Lemonade", Quantity: 1, UnitPrice: price("3.50")},
	)
	s.seedOrder(customerIDs[1], now.AddDate(0, 0, -2), models.StatusCanceled, "Avenida de la Paz 4, Madrid",
		ItemInput{ProductName: "Chicken Crunch", Quantity: 1, UnitPrice: price("10.49")},
	)

	s.seedReview(customerIDs[0], 5, "Best burger in town, the bacon deluxe is unreal.", "Bacon Deluxe", true, now.AddDate(0, 0, -1))
	s.seedReview(customerIDs[1], 4, "Great fries, delivery was a bit slow.", "Fries", true, now.AddDate(0, 0, -2))
	s.seedReview(customerIDs[0], 5, "Friendly staff and quick service at the counter.", "", false, now.Add(-3*time.Hour))

	s.seedProducts()
	return nil
}

func (s *Service) seedOrder(customerID int, at time.Time, status models.OrderStatus, address string, items ...ItemInput) {
	order := models.Order{
		ID:              s.nextOrderID,
		CustomerID:      customerID,
		Timestamp:       at,
		Status:          status,
		Source:          models.SourceOnline,
		EstimatedTime:   DefaultEstimatedTime,
		DeliveryAddress: address,
		PaymentMethod:   "card",
		LastUpdated:     at.Add(40 * time.Minute),
		Total:           decimal.Zero,
	}
	s.nextOrderID++
	for _, it := range items {
		li := models.LineItem{
			ID:          s.nextLineItemID,
			OrderID:     order.ID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
		s.nextLineItemID++
		order.Items = append(order.Items, li)
		order.Total = order.Total.Add(li.Subtotal())
	}
	s.orders = append(s.orders, order)
}

func (s *Service) seedReview(customerID, rating int, comment, product string, verified bool, at time.Time) {
	s.reviews = append(s.reviews, models.Review{
		ID:              s.nextReviewID,
		CustomerID:      customerID,
		Rating:          rating,
		Comment:         comment,
		Timestamp:       at,
		Verified:        verified,
		ReviewedProduct: product,
	})
	s.nextReviewID++
}

// seedProducts adds the standard menu catalog
func (s *Service) seedProducts() {
	for _, in := range seedMenu {
		s.insertProduct(in)
	}
}
