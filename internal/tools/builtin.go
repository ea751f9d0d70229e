// ABOUTME: The account-support tool set: customer lookup and account actions.
// ABOUTME: Handlers read and mutate the mock dataset through the Store.

package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const ibanNote = "US banks do not use IBAN codes. Use routing number + account number for domestic transfers, SWIFT code for international."

// RegisterAccountTools registers the customer lookup and account action tools
// against the given store.
func RegisterAccountTools(r *Registry, store *Store) error {
	h := &accountHandlers{store: store}

	toolset := []*Tool{
		{
			Name:        "search_customer",
			Description: "Search Customer - Customer account management tool",
			InputSchema: []byte(`{"type":"object","properties":{"identifier":{"type":"string","description":"Customer identifier: account number, card number, or SWIFT/BIC code (US banks do not use IBAN)"}},"required":["identifier"]}`),
			Handler:     h.SearchCustomer,
		},
		{
			Name:        "get_customer_profile",
			Description: "Get Customer Profile - Customer account management tool",
			InputSchema: []byte(`{"type":"object","properties":{"customer_id":{"type":"string","description":"Unique customer identifier"}},"required":["customer_id"]}`),
			Handler:     h.GetCustomerProfile,
		},
		{
			Name:        "get_active_products",
			Description: "Get Active Products - Customer account management tool",
			InputSchema: []byte(`{"type":"object","properties":{"customer_id":{"type":"string","description":"Unique customer identifier"}},"required":["customer_id"]}`),
			Handler:     h.GetActiveProducts,
		},
		{
			Name:        "freeze_account",
			Description: "Freeze Account - Customer account management tool",
			InputSchema: []byte(`{"type":"object","properties":{"account_id":{"type":"string","description":"Account/product identifier to freeze"}},"required":["account_id"]}`),
			Handler:     h.FreezeAccount,
		},
		{
			Name:        "unfreeze_account",
			Description: "Unfreeze Account - Customer account management tool",
			InputSchema: []byte(`{"type":"object","properties":{"account_id":{"type":"string","description":"Account/product identifier to unfreeze"}},"required":["account_id"]}`),
			Handler:     h.UnfreezeAccount,
		},
		{
			Name:        "reset_password",
			Description: "Reset Password - Customer account management tool",
			InputSchema: []byte(`{"type":"object","properties":{"customer_id":{"type":"string","description":"Customer identifier for password reset"}},"required":["customer_id"]}`),
			Handler:     h.ResetPassword,
		},
		{
			Name:        "update_address",
			Description: "Update Address - Customer account management tool",
			InputSchema: []byte(`{"type":"object","properties":{"customer_id":{"type":"string","description":"Customer identifier"},"new_address":{"type":"string","description":"New address for the customer"}},"required":["customer_id","new_address"]}`),
			Handler:     h.UpdateAddress,
		},
		{
			Name:        "get_banking_details",
			Description: "Get Banking Details - Customer account management tool",
			InputSchema: []byte(`{"type":"object","properties":{"account_id":{"type":"string","description":"Account identifier to get banking details for"}},"required":["account_id"]}`),
			Handler:     h.GetBankingDetails,
		},
		{
			Name:        "search_by_swift_bic",
			Description: "Search By Swift Bic - Customer account management tool",
			InputSchema: []byte(`{"type":"object","properties":{"swift_bic_code":{"type":"string","description":"SWIFT or BIC code to search for"}},"required":["swift_bic_code"]}`),
			Handler:     h.SearchBySwiftBIC,
		},
		{
			Name:        "get_iban_info",
			Description: "Get Iban Info - Customer account management tool",
			InputSchema: []byte(`{"type":"object","properties":{"account_id":{"type":"string","description":"Account identifier to check for IBAN (will explain why IBAN is not applicable for US accounts)"}},"required":["account_id"]}`),
			Handler:     h.GetIBANInfo,
		},
	}

	for _, t := range toolset {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}

type accountHandlers struct {
	store *Store
}

// stringArg extracts a string argument, defaulting to "".
func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}

// referenceID builds an operation reference like "FRZ-3FA85F64".
func referenceID(prefix string) string {
	id := uuid.New()
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(fmt.Sprintf("%x", id[:4])))
}

// SearchCustomer resolves an account number, card number, or SWIFT/BIC code
// to a customer id.
func (h *accountHandlers) SearchCustomer(args map[string]any) (map[string]any, error) {
	identifier := stringArg(args, "identifier")

	customerID, ok := h.store.LookupIdentifier(identifier)
	if !ok {
		return map[string]any{
			"success":    false,
			"error":      "Customer not found",
			"identifier": identifier,
			"note":       "US banks do not use IBAN codes. Use account number, card number, or SWIFT/BIC code.",
		}, nil
	}

	return map[string]any{
		"success":     true,
		"customer_id": customerID,
		"identifier":  identifier,
		"timestamp":   timestamp(),
	}, nil
}

// GetCustomerProfile returns the customer's profile fields.
func (h *accountHandlers) GetCustomerProfile(args map[string]any) (map[string]any, error) {
	customerID := stringArg(args, "customer_id")

	customer, ok := h.store.Customer(customerID)
	if !ok {
		return map[string]any{
			"success":     false,
			"error":       "Customer not found",
			"customer_id": customerID,
		}, nil
	}

	return map[string]any{
		"success":      true,
		"customer_id":  customer.CustomerID,
		"name":         customer.Name,
		"email":        customer.Email,
		"phone":        customer.Phone,
		"address":      customer.Address,
		"kyc_status":   customer.KYCStatus,
		"date_created": customer.DateCreated,
		"timestamp":    timestamp(),
	}, nil
}

// GetActiveProducts lists the customer's products.
func (h *accountHandlers) GetActiveProducts(args map[string]any) (map[string]any, error) {
	customerID := stringArg(args, "customer_id")

	products := h.store.Products(customerID)
	if len(products) == 0 {
		return map[string]any{
			"success":     false,
			"error":       "No products found for customer",
			"customer_id": customerID,
		}, nil
	}

	return map[string]any{
		"success":        true,
		"customer_id":    customerID,
		"products":       products,
		"total_products": len(products),
		"timestamp":      timestamp(),
	}, nil
}

// FreezeAccount marks an account frozen.
func (h *accountHandlers) FreezeAccount(args map[string]any) (map[string]any, error) {
	accountID := stringArg(args, "account_id")

	if !h.store.SetAccountStatus(accountID, "frozen") {
		return map[string]any{
			"success":    false,
			"error":      "Account not found",
			"account_id": accountID,
		}, nil
	}

	return map[string]any{
		"success":      true,
		"account_id":   accountID,
		"action":       "freeze",
		"new_status":   "frozen",
		"timestamp":    timestamp(),
		"reference_id": referenceID("FRZ"),
	}, nil
}

// UnfreezeAccount marks an account active again.
func (h *accountHandlers) UnfreezeAccount(args map[string]any) (map[string]any, error) {
	accountID := stringArg(args, "account_id")

	if !h.store.SetAccountStatus(accountID, "active") {
		return map[string]any{
			"success":    false,
			"error":      "Account not found",
			"account_id": accountID,
		}, nil
	}

	return map[string]any{
		"success":      true,
		"account_id":   accountID,
		"action":       "unfreeze",
		"new_status":   "active",
		"timestamp":    timestamp(),
		"reference_id": referenceID("UFZ"),
	}, nil
}

// ResetPassword issues a temporary password for the customer.
func (h *accountHandlers) ResetPassword(args map[string]any) (map[string]any, error) {
	customerID := stringArg(args, "customer_id")

	if _, ok := h.store.Customer(customerID); !ok {
		return map[string]any{
			"success":     false,
			"error":       "Customer not found",
			"customer_id": customerID,
		}, nil
	}

	return map[string]any{
		"success":            true,
		"customer_id":        customerID,
		"action":             "password_reset",
		"temporary_password": referenceID("TEMP"),
		"expires_in_hours":   24,
		"timestamp":          timestamp(),
		"reference_id":       referenceID("PWD"),
	}, nil
}

// UpdateAddress replaces the customer's address on file.
func (h *accountHandlers) UpdateAddress(args map[string]any) (map[string]any, error) {
	customerID := stringArg(args, "customer_id")
	newAddress := stringArg(args, "new_address")

	oldAddress, ok := h.store.UpdateAddress(customerID, newAddress)
	if !ok {
		return map[string]any{
			"success":     false,
			"error":       "Customer not found",
			"customer_id": customerID,
		}, nil
	}

	return map[string]any{
		"success":      true,
		"customer_id":  customerID,
		"action":       "address_update",
		"old_address":  oldAddress,
		"new_address":  newAddress,
		"timestamp":    timestamp(),
		"reference_id": referenceID("ADR"),
	}, nil
}

// GetBankingDetails returns wire-transfer details for deposit accounts.
func (h *accountHandlers) GetBankingDetails(args map[string]any) (map[string]any, error) {
	accountID := stringArg(args, "account_id")

	customerID, product, ok := h.store.FindProduct(accountID)
	if !ok {
		return map[string]any{
			"success":    false,
			"error":      "Account not found",
			"account_id": accountID,
		}, nil
	}

	if !product.isDepositAccount() {
		return map[string]any{
			"success":      false,
			"error":        "Account type does not support international transfers",
			"account_id":   accountID,
			"account_type": product.Type,
		}, nil
	}

	balance := 0.00
	if product.Balance != nil {
		balance = *product.Balance
	}

	return map[string]any{
		"success": true,
		"banking_details": map[string]any{
			"account_id":     accountID,
			"customer_id":    customerID,
			"account_type":   product.Type,
			"status":         product.Status,
			"swift_code":     product.SwiftCode,
			"bic_code":       product.BICCode,
			"bank_name":      product.BankName,
			"routing_number": product.RoutingNumber,
			"account_number": product.AccountNumber,
			"balance":        balance,
			"iban":           nil, // US banks do not use IBAN codes
			"iban_note":      ibanNote,
		},
		"timestamp": timestamp(),
	}, nil
}

// SearchBySwiftBIC finds all deposit accounts carrying the given code.
func (h *accountHandlers) SearchBySwiftBIC(args map[string]any) (map[string]any, error) {
	code := stringArg(args, "swift_bic_code")

	matches := h.store.ProductsBySwiftBIC(code)
	if len(matches) == 0 {
		return map[string]any{
			"success":        false,
			"error":          "No accounts found for SWIFT/BIC code",
			"swift_bic_code": code,
		}, nil
	}

	accounts := make([]map[string]any, 0, len(matches))
	for _, m := range matches {
		accounts = append(accounts, map[string]any{
			"account_id":     m.Product.ProductID,
			"customer_id":    m.CustomerID,
			"customer_name":  m.CustomerName,
			"account_type":   m.Product.Type,
			"status":         m.Product.Status,
			"swift_code":     m.Product.SwiftCode,
			"bic_code":       m.Product.BICCode,
			"bank_name":      m.Product.BankName,
			"routing_number": m.Product.RoutingNumber,
		})
	}

	return map[string]any{
		"success":           true,
		"swift_bic_code":    code,
		"matching_accounts": accounts,
		"total_accounts":    len(accounts),
		"timestamp":         timestamp(),
	}, nil
}

// GetIBANInfo explains why IBAN does not apply to US accounts. Always a
// domain-level failure when the account exists; not-found stays not-found.
func (h *accountHandlers) GetIBANInfo(args map[string]any) (map[string]any, error) {
	accountID := stringArg(args, "account_id")

	if !h.store.HasAccount(accountID) {
		return map[string]any{
			"success":    false,
			"error":      "Account not found",
			"account_id": accountID,
		}, nil
	}

	return map[string]any{
		"success":     false,
		"error":       "IBAN not applicable for US bank accounts",
		"account_id":  accountID,
		"explanation": "US banks do not use IBAN (International Bank Account Number) codes. Instead, US banks use:",
		"alternatives": map[string]any{
			"domestic_transfers":      "Routing number + Account number",
			"international_transfers": "SWIFT/BIC code + Routing number + Account number",
			"wire_transfers":          "SWIFT code + Bank name + Account details",
		},
		"note":      "IBAN is primarily used by European banks and some other international banks, but not by US financial institutions.",
		"timestamp": timestamp(),
	}, nil
}
