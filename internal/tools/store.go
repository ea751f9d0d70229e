// ABOUTME: In-memory mock customer/account dataset backing the support tools.
// ABOUTME: Mutations are serialized behind a mutex; reads return copies.

package tools

import "sync"

// Customer holds a customer profile record.
type Customer struct {
	CustomerID  string `json:"customer_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	KYCStatus   string `json:"kyc_status"`
	DateCreated string `json:"date_created"`
}

// Product holds one banking product owned by a customer. Optional numeric
// fields are pointers so absent values are omitted from JSON output.
type Product struct {
	ProductID     string   `json:"product_id"`
	Type          string   `json:"type"`
	Status        string   `json:"status"`
	Balance       *float64 `json:"balance,omitempty"`
	Limit         *float64 `json:"limit,omitempty"`
	Principal     *float64 `json:"principal,omitempty"`
	SwiftCode     string   `json:"swift_code,omitempty"`
	BICCode       string   `json:"bic_code,omitempty"`
	BankName      string   `json:"bank_name,omitempty"`
	RoutingNumber string   `json:"routing_number,omitempty"`
	AccountNumber string   `json:"account_number,omitempty"`
}

// Deposit account types that carry wire-transfer details.
const (
	typeChecking = "checking_account"
	typeSavings  = "savings_account"
)

// isDepositAccount reports whether the product supports wire transfers.
func (p *Product) isDepositAccount() bool {
	return p.Type == typeChecking || p.Type == typeSavings
}

// Store is the process-wide customer dataset. All access goes through its
// mutex so concurrent tool calls see consistent records.
type Store struct {
	mu          sync.Mutex
	customers   map[string]*Customer
	identifiers map[string]string // account/card/SWIFT identifier -> customer id
	products    map[string][]*Product
	status      map[string]string // product id -> account status
}

func f64(v float64) *float64 { return &v }

// NewStore builds the mock dataset: three customers, their identifier index,
// and their product portfolios.
func NewStore() *Store {
	s := &Store{
		customers: map[string]*Customer{
			"CUST001": {
				CustomerID:  "CUST001",
				Name:        "John Smith",
				Email:       "john.smith@email.com",
				Phone:       "+1-555-0123",
				Address:     "123 Main St, New York, NY 10001",
				KYCStatus:   "VERIFIED",
				DateCreated: "2020-01-15",
			},
			"CUST002": {
				CustomerID:  "CUST002",
				Name:        "Sarah Johnson",
				Email:       "sarah.johnson@email.com",
				Phone:       "+1-555-0456",
				Address:     "456 Oak Ave, Los Angeles, CA 90210",
				KYCStatus:   "PENDING",
				DateCreated: "2021-03-22",
			},
			"CUST003": {
				CustomerID:  "CUST003",
				Name:        "Michael Brown",
				Email:       "michael.brown@email.com",
				Phone:       "+1-555-0789",
				Address:     "789 Pine St, Chicago, IL 60601",
				KYCStatus:   "VERIFIED",
				DateCreated: "2019-07-10",
			},
		},
		identifiers: map[string]string{
			// Account numbers
			"ACC123456789": "CUST001",
			"ACC987654321": "CUST002",
			"ACC555666777": "CUST003",
			// Card numbers (last 4 digits only)
			"****1234": "CUST001",
			"****5678": "CUST002",
			"****9012": "CUST003",
			// SWIFT/BIC codes. US banks do not use IBAN codes; they use
			// routing numbers + account numbers.
			"CHASUS33": "CUST001", // Chase Bank
			"BOFAUS3N": "CUST002", // Bank of America
			"CITIUS33": "CUST003", // Citibank
		},
		products: map[string][]*Product{
			"CUST001": {
				{
					ProductID:     "CHK001",
					Type:          typeChecking,
					Status:        "active",
					Balance:       f64(2500.00),
					SwiftCode:     "CHASUS33",
					BICCode:       "CHASUS33",
					BankName:      "Chase Bank",
					RoutingNumber: "021000021",
					AccountNumber: "ACC123456789",
				},
				{
					ProductID: "CC001",
					Type:      "credit_card",
					Status:    "active",
					Limit:     f64(5000.00),
				},
				{
					ProductID:     "SAV001",
					Type:          typeSavings,
					Status:        "active",
					Balance:       f64(15000.00),
					SwiftCode:     "CHASUS33",
					BICCode:       "CHASUS33",
					BankName:      "Chase Bank",
					RoutingNumber: "021000021",
					AccountNumber: "SAV123456789",
				},
			},
			"CUST002": {
				{
					ProductID:     "CHK002",
					Type:          typeChecking,
					Status:        "active",
					Balance:       f64(1200.00),
					SwiftCode:     "BOFAUS3N",
					BICCode:       "BOFAUS3N",
					BankName:      "Bank of America",
					RoutingNumber: "026009593",
					AccountNumber: "ACC987654321",
				},
				{
					ProductID: "LON001",
					Type:      "personal_loan",
					Status:    "active",
					Principal: f64(10000.00),
				},
			},
			"CUST003": {
				{
					ProductID:     "CHK003",
					Type:          typeChecking,
					Status:        "frozen",
					Balance:       f64(3200.00),
					SwiftCode:     "CITIUS33",
					BICCode:       "CITIUS33",
					BankName:      "Citibank",
					RoutingNumber: "021000089",
					AccountNumber: "ACC555666777",
				},
				{
					ProductID: "CC003",
					Type:      "credit_card",
					Status:    "active",
					Limit:     f64(10000.00),
				},
				{
					ProductID:     "SAV003",
					Type:          typeSavings,
					Status:        "active",
					Balance:       f64(25000.00),
					SwiftCode:     "CITIUS33",
					BICCode:       "CITIUS33",
					BankName:      "Citibank",
					RoutingNumber: "021000089",
					AccountNumber: "SAV555666777",
				},
				{
					ProductID: "MTG001",
					Type:      "mortgage",
					Status:    "active",
					Principal: f64(250000.00),
				},
			},
		},
		status: map[string]string{
			"CHK001": "active",
			"CHK002": "active",
			"CHK003": "frozen",
			"CC001":  "active",
			"CC003":  "active",
			"SAV001": "active",
			"SAV003": "active",
			"LON001": "active",
			"MTG001": "active",
		},
	}
	return s
}

// LookupIdentifier resolves an account number, masked card number, or
// SWIFT/BIC code to a customer id.
func (s *Store) LookupIdentifier(identifier string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.identifiers[identifier]
	return id, ok
}

// Customer returns a copy of the customer's profile.
func (s *Store) Customer(customerID string) (Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[customerID]
	if !ok {
		return Customer{}, false
	}
	return *c, true
}

// Products returns copies of the customer's products.
func (s *Store) Products(customerID string) []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProducts(s.products[customerID])
}

// FindProduct locates a product by id across all customers.
func (s *Store) FindProduct(accountID string) (customerID string, product Product, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for custID, products := range s.products {
		for _, p := range products {
			if p.ProductID == accountID {
				return custID, *p, true
			}
		}
	}
	return "", Product{}, false
}

// ProductsBySwiftBIC returns every product matching the SWIFT or BIC code,
// paired with its owner's customer id and name.
func (s *Store) ProductsBySwiftBIC(code string) []SwiftMatch {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []SwiftMatch
	for custID, products := range s.products {
		name := "Unknown"
		if c, ok := s.customers[custID]; ok {
			name = c.Name
		}
		for _, p := range products {
			if p.SwiftCode == code || p.BICCode == code {
				matches = append(matches, SwiftMatch{
					CustomerID:   custID,
					CustomerName: name,
					Product:      *p,
				})
			}
		}
	}
	return matches
}

// SwiftMatch is one ProductsBySwiftBIC result.
type SwiftMatch struct {
	CustomerID   string
	CustomerName string
	Product      Product
}

// HasAccount reports whether any customer owns the given product id.
func (s *Store) HasAccount(accountID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.status[accountID]
	if ok {
		return true
	}
	for _, products := range s.products {
		for _, p := range products {
			if p.ProductID == accountID {
				return true
			}
		}
	}
	return false
}

// SetAccountStatus updates the status index and the product record in place.
// Returns false if the account is unknown.
func (s *Store) SetAccountStatus(accountID, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.status[accountID]; !ok {
		return false
	}
	s.status[accountID] = status

	for _, products := range s.products {
		for _, p := range products {
			if p.ProductID == accountID {
				p.Status = status
				return true
			}
		}
	}
	return true
}

// UpdateAddress replaces the customer's address, returning the previous one.
func (s *Store) UpdateAddress(customerID, newAddress string) (old string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.customers[customerID]
	if !found {
		return "", false
	}
	old = c.Address
	c.Address = newAddress
	return old, true
}

// CustomerCount returns the number of customer records.
func (s *Store) CustomerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.customers)
}

func copyProducts(in []*Product) []Product {
	out := make([]Product, 0, len(in))
	for _, p := range in {
		out = append(out, *p)
	}
	return out
}
