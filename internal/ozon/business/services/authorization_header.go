package services

import (
	"github.com/go-resty/resty/v2"
)

type AuthEngine interface {
	GetApiKey() string
	SetApiKey(request *resty.Request)
}

// SellerAuth — авторизация Seller API: идентификатор клиента и API-ключ в заголовках.
type SellerAuth struct {
	clientID string
	apiKey   string
}

func (a *SellerAuth) GetApiKey() string {
	return a.apiKey
}

func (a *SellerAuth) SetApiKey(request *resty.Request) {
	request.SetHeader("Client-Id", a.clientID)
	request.SetHeader("Api-Key", a.apiKey)
}

func NewSellerAuth(clientID, apiKey string) *SellerAuth {
	if clientID == "" || apiKey == "" {
		return nil
	}
	return &SellerAuth{clientID: clientID, apiKey: apiKey}
}
