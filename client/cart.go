package client

import (
	"fmt"
	"sort"

	"learnhub-backend/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Cart is the ephemeral client-side selection prior to checkout. It tracks
// quantities per lesson and optimistically adjusts the displayed remaining
// spaces of the lessons it was handed.
type Cart struct {
	lessons map[uuid.UUID]*models.Lesson
	items   map[uuid.UUID]int
}

// NewCart creates a cart over the given catalog snapshot.
func NewCart(lessons []models.Lesson) *Cart {
	c := &Cart{
		lessons: make(map[uuid.UUID]*models.Lesson, len(lessons)),
		items:   make(map[uuid.UUID]int),
	}
	for i := range lessons {
		c.lessons[lessons[i].ID] = &lessons[i]
	}
	return c
}

// Add puts one space of the lesson in the cart and decrements its displayed
// availability. It fails when the lesson is unknown or sold out.
func (c *Cart) Add(lessonID uuid.UUID) error {
	lesson, ok := c.lessons[lessonID]
	if !ok {
		return fmt.Errorf("unknown lesson %s", lessonID)
	}
	if lesson.Spaces < 1 {
		return fmt.Errorf("no spaces left on %s", lesson.Subject)
	}
	lesson.Spaces--
	c.items[lessonID]++
	return nil
}

// Remove takes one space of the lesson out of the cart and restores its
// displayed availability.
func (c *Cart) Remove(lessonID uuid.UUID) error {
	qty, ok := c.items[lessonID]
	if !ok || qty == 0 {
		return fmt.Errorf("lesson %s is not in the cart", lessonID)
	}
	if qty == 1 {
		delete(c.items, lessonID)
	} else {
		c.items[lessonID] = qty - 1
	}
	if lesson, ok := c.lessons[lessonID]; ok {
		lesson.Spaces++
	}
	return nil
}

// Quantity returns the carted quantity for a lesson.
func (c *Cart) Quantity(lessonID uuid.UUID) int {
	return c.items[lessonID]
}

// Len returns the number of distinct lessons in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}

// Items returns the cart contents as order items, in a stable order.
func (c *Cart) Items() []OrderItem {
	items := make([]OrderItem, 0, len(c.items))
	for id, qty := range c.items {
		items = append(items, OrderItem{LessonID: id, Quantity: qty})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].LessonID.String() < items[j].LessonID.String()
	})
	return items
}

// Clear empties the cart without touching displayed availability; callers use
// it after a successful checkout, when server-confirmed counts replace the
// optimistic ones.
func (c *Cart) Clear() {
	c.items = make(map[uuid.UUID]int)
}

// CheckoutForm carries the fields validated before an order is submitted.
type CheckoutForm struct {
	Name  string `validate:"required"`
	Phone string `validate:"required,numeric"`
}

var checkoutValidator = validator.New()

// Checkout validates the form and builds the order payload from the cart.
func (c *Cart) Checkout(form CheckoutForm) (*OrderRequest, error) {
	if err := checkoutValidator.Struct(form); err != nil {
		return nil, fmt.Errorf("checkout form invalid: %w", err)
	}
	if len(c.items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}
	return &OrderRequest{
		Name:  form.Name,
		Phone: form.Phone,
		Items: c.Items(),
	}, nil
}

// Sort keys for SortLessons.
const (
	SortBySubject  = "subject"
	SortByLocation = "location"
	SortByPrice    = "price"
	SortBySpaces   = "spaces"
)

// SortLessons orders lessons in place by the given key and direction.
// Unknown keys sort by subject.
func SortLessons(lessons []models.Lesson, key string, ascending bool) {
	less := func(i, j int) bool {
		switch key {
		case SortByLocation:
			return lessons[i].Location < lessons[j].Location
		case SortByPrice:
			return lessons[i].Price < lessons[j].Price
		case SortBySpaces:
			return lessons[i].Spaces < lessons[j].Spaces
		default:
			return lessons[i].Subject < lessons[j].Subject
		}
	}
	if ascending {
		sort.SliceStable(lessons, less)
	} else {
		sort.SliceStable(lessons, func(i, j int) bool { return less(j, i) })
	}
}
