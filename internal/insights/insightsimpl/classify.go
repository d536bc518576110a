package insightsimpl

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vinifbn/instagram-insights-api/internal/domain"
	"github.com/vinifbn/instagram-insights-api/internal/instagram"
)

// classify folds any insight-fetch failure into a typed InsightsError.
func classify(err error) domain.InsightsError {
	var apiErr *instagram.APIError
	if !errors.As(err, &apiErr) {
		return domain.InsightsError{
			Reason:  domain.ReasonUnknownError,
			Message: "Erro desconhecido",
			Details: err.Error(),
		}
	}
	return classifyStatus(apiErr.StatusCode, apiErr.Message)
}

// classifyStatus maps an upstream (status, message) pair to a reason. Pure
// and total, so it can be tested without any network plumbing.
func classifyStatus(status int, message string) domain.InsightsError {
	switch {
	case status == http.StatusBadRequest && strings.Contains(message, "Unsupported get request"):
		return domain.InsightsError{
			Reason:  domain.ReasonUnsupportedMetric,
			Message: "Métricas não suportadas",
			Details: "Este tipo de post não suporta as métricas solicitadas.",
		}
	case status == http.StatusBadRequest && strings.Contains(strings.ToLower(message), "permissions"):
		return domain.InsightsError{
			Reason:  domain.ReasonPermissions,
			Message: "Permissões insuficientes",
			Details: "O token de acesso não tem permissão para ler insights.",
		}
	case status == http.StatusBadRequest:
		// Most ambiguous 400s come from personal accounts without insight
		// entitlement.
		return domain.InsightsError{
			Reason:  domain.ReasonPersonalAccount,
			Message: "Conta pessoal",
			Details: "Insights completos só estão disponíveis para contas business.",
		}
	case status == http.StatusForbidden:
		return domain.InsightsError{
			Reason:  domain.ReasonAccessDenied,
			Message: "Acesso negado",
			Details: "O Instagram negou o acesso aos insights desta mídia.",
		}
	default:
		return domain.InsightsError{
			Reason:  domain.ReasonAPIError,
			Message: "Erro da API do Instagram",
			Details: fmt.Sprintf("HTTP %d: %s", status, message),
		}
	}
}
