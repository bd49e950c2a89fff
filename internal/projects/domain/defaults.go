package domain

import "time"

const (
	DefaultTitle       = "Scalable E-Commerce System Architecture"
	DefaultDescription = "Architectural Design of a Scalable Web Services Platform for a Nationwide E-Commerce System"
)

// DefaultProject builds the document a first-time user starts from.
func DefaultProject(id string, now time.Time) Project {
	p := Project{
		ID:                id,
		Title:             DefaultTitle,
		Description:       DefaultDescription,
		CompletedSections: []string{},
		Microservices: []Microservice{
			{
				ID:               "auth-service",
				Name:             "Authentication Service",
				Responsibilities: "User authentication, authorization, and JWT token management",
				Entities:         "User, Session, Permission",
				Endpoints:        "/auth/login, /auth/register, /auth/logout, /auth/verify",
				Dependencies:     "None",
				DatabaseType:     "PostgreSQL",
			},
			{
				ID:               "product-service",
				Name:             "Product Service",
				Responsibilities: "Product catalog management and inventory",
				Entities:         "Product, Category, Inventory",
				Endpoints:        "/products, /products/{id}, /products/search",
				Dependencies:     "None",
				DatabaseType:     "PostgreSQL",
			},
			{
				ID:               "order-service",
				Name:             "Order Service",
				Responsibilities: "Order processing and order history",
				Entities:         "Order, OrderItem, OrderStatus",
				Endpoints:        "/orders, /orders/{id}, /orders/create",
				Dependencies:     "Product Service, Payment Service",
				DatabaseType:     "PostgreSQL",
			},
			{
				ID:               "payment-service",
				Name:             "Payment Service",
				Responsibilities: "Payment processing and transaction management",
				Entities:         "Payment, Transaction, PaymentMethod",
				Endpoints:        "/payments, /payments/process, /payments/verify",
				Dependencies:     "External Payment Gateways (MTN, Vodafone)",
				DatabaseType:     "PostgreSQL",
			},
		},
		SecurityMeasures: map[string]bool{
			"jwt":             false,
			"oauth2":          false,
			"encryption":      false,
			"rateLimiting":    false,
			"paymentSecurity": false,
			"ddosProtection":  false,
		},
		LastUpdated: now.UnixMilli(),
	}
	p.Normalize()
	return p
}
