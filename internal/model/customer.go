package model

import (
	"strings"
	"time"
)

type CustomerStatus string

const (
	CustomerStatusActive  CustomerStatus = "active"
	CustomerStatusBlocked CustomerStatus = "blocked"
)

func (s CustomerStatus) IsValid() bool {
	return s == CustomerStatusActive || s == CustomerStatusBlocked
}

type AuthMethod string

const (
	AuthMethodEmail    AuthMethod = "email"
	AuthMethodGoogle   AuthMethod = "google"
	AuthMethodFacebook AuthMethod = "facebook"
)

var AuthMethods = []AuthMethod{AuthMethodEmail, AuthMethodGoogle, AuthMethodFacebook}

func (m AuthMethod) IsValid() bool {
	switch m {
	case AuthMethodEmail, AuthMethodGoogle, AuthMethodFacebook:
		return true
	default:
		return false
	}
}

// Customer 存放於 users/{userId}，由前台建立
type Customer struct {
	ID          string         `json:"id" firestore:"-"`
	DisplayName string         `json:"displayName" firestore:"displayName"`
	Email       string         `json:"email" firestore:"email"`
	PhoneNumber string         `json:"phoneNumber" firestore:"phoneNumber"`
	PhotoURL    string         `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	AuthMethod  AuthMethod     `json:"authMethod,omitempty" firestore:"authMethod,omitempty"`
	Status      CustomerStatus `json:"status,omitempty" firestore:"status,omitempty"`
	CreatedAt   time.Time      `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

// EffectiveStatus 沒有寫過 status 的帳號視為 active
func (c *Customer) EffectiveStatus() CustomerStatus {
	if c.Status == "" {
		return CustomerStatusActive
	}
	return c.Status
}

// ResolveAuthMethod 優先使用註冊時寫入的 authMethod。
// 舊資料沒有這個欄位時才用 photoURL + email 網域推測:
// 有頭像且是 gmail => google，有頭像但不是 gmail => facebook，其餘 => email
func (c *Customer) ResolveAuthMethod() AuthMethod {
	if c.AuthMethod.IsValid() {
		return c.AuthMethod
	}
	if c.PhotoURL == "" {
		return AuthMethodEmail
	}
	if strings.HasSuffix(strings.ToLower(c.Email), "@gmail.com") {
		return AuthMethodGoogle
	}
	return AuthMethodFacebook
}

// Address 存放於 users/{userId}/addresses/{addressId}
type Address struct {
	ID        string `json:"id" firestore:"-"`
	Label     string `json:"label" firestore:"label"`
	FirstName string `json:"firstName,omitempty" firestore:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty" firestore:"lastName,omitempty"`
	Address   string `json:"address" firestore:"address"`
	City      string `json:"city" firestore:"city"`
	State     string `json:"state" firestore:"state"`
	Country   string `json:"country" firestore:"country"`
	Phone     string `json:"phone" firestore:"phone"`
	IsDefault bool   `json:"isDefault" firestore:"isDefault"`
}

// CustomerView 聚合後的客戶資料，畫面不需要再查詢
type CustomerView struct {
	Customer
	AuthMethod AuthMethod     `json:"authMethod"`
	Status     CustomerStatus `json:"status"`
	OrderCount int            `json:"orderCount"`
	TotalSpent float64        `json:"totalSpent"`
	Addresses  []Address      `json:"addresses"`
	Orders     []Order        `json:"orders,omitempty"`
}
