package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrUnsupportedFile     = "VAL_004" // Tipo de arquivo não suportado
	ErrFileTooLarge        = "VAL_005" // Arquivo acima do limite
	ErrNotFound            = "VAL_006" // Recurso não encontrado

	// Erros de análise (3000-3999)
	ErrInsufficientData = "ANL_001" // Dados insuficientes para o cálculo
	ErrMissingColumn    = "ANL_002" // Coluna obrigatória ausente
	ErrInvalidParameter = "ANL_003" // Parâmetro fora dos limites
	ErrEmptyDataset     = "ANL_004" // Arquivo sem linhas

	// Erros do servidor (5000-5999)
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_003" // Erro em serviço externo
	ErrCommunication   = "SRV_004" // Erro de comunicação
	ErrUnavailable     = "SRV_005" // Recurso não disponível
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrUnsupportedFile:     http.StatusUnsupportedMediaType,
	ErrFileTooLarge:        http.StatusRequestEntityTooLarge,
	ErrNotFound:            http.StatusNotFound,
	ErrInsufficientData:    http.StatusUnprocessableEntity,
	ErrMissingColumn:       http.StatusUnprocessableEntity,
	ErrInvalidParameter:    http.StatusBadRequest,
	ErrEmptyDataset:        http.StatusUnprocessableEntity,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
	ErrCommunication:       http.StatusServiceUnavailable,
	ErrUnavailable:         http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// Coded é implementado pelos erros de domínio que carregam um código da API
type Coded interface {
	error
	ErrorCode() string
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
// Erros que implementam Coded mantêm o próprio código
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	var coded Coded
	if errors.As(err, &coded) {
		code = coded.ErrorCode()
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}

// WriteFromError escreve um erro Go usando o código do domínio quando existir
func WriteFromError(w http.ResponseWriter, err error, fallbackCode string) {
	apiErr := FromError(err, fallbackCode)
	WriteError(w, apiErr.Code, apiErr.Message, nil)
}
