package domain

// ErrorResponse é a estrutura padronizada para respostas de erro da API.
// O simulador a produz e o cliente HTTP a decodifica em respostas não-2xx.
type ErrorResponse struct {
	Code     int    `json:"code" example:"400"`
	Category string `json:"category" example:"VALIDATION_ERROR"`
	Message  string `json:"message" example:"O nome do produto não pode ser vazio."`
}
