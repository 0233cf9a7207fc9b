package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/BoltzExchange/broadcaster/internal/build"
	"github.com/BoltzExchange/broadcaster/internal/logger"
	"github.com/BoltzExchange/broadcaster/pkg/api"
	"github.com/BoltzExchange/broadcaster/pkg/broadcaster"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

func (server *Server) health(w http.ResponseWriter, r *http.Request) {
	writeOK(w, api.HealthResponse{Status: "ok"})
}

func (server *Server) version(w http.ResponseWriter, r *http.Request) {
	writeOK(w, api.VersionResponse{Version: build.GetVersion(), Chain: server.aggregator.Chain()})
}

func (server *Server) providers(w http.ResponseWriter, r *http.Request) {
	response := api.ProvidersResponse{
		Chain:     server.aggregator.Chain(),
		Providers: server.aggregator.Plugins(),
	}
	if failures := server.aggregator.Failures(); len(failures) > 0 {
		response.Failures = make(map[string]string, len(failures))
		for _, failure := range failures {
			response.Failures[failure.Name] = failure.Err.Error()
		}
	}
	writeOK(w, response)
}

func (server *Server) fee(w http.ResponseWriter, r *http.Request) {
	writeOK(w, api.FeeResponse{
		FeePerKb:    server.aggregator.FeePerKb(),
		DefaultRate: server.aggregator.DefaultRate(),
	})
}

// awaitReport waits for the report of a callback unless the request is over first
func awaitReport[T any](ctx context.Context, reports <-chan T) T {
	ctx, cancel := context.WithTimeout(ctx, waitTimeout)
	defer cancel()
	select {
	case report := <-reports:
		return report
	case <-ctx.Done():
		var empty T
		return empty
	}
}

func (server *Server) broadcast(w http.ResponseWriter, r *http.Request) {
	var request api.BroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if err := server.validate.Struct(request); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	reports := make(chan broadcaster.BroadcastReport, 1)
	result, err := server.aggregator.Broadcast(r.Context(), broadcaster.BroadcastRequest{
		Tx:      request.Hex,
		Verbose: request.Verbose,
		Callback: func(report broadcaster.BroadcastReport) {
			reports <- report
		},
	})

	var response api.BroadcastResponse
	if request.Wait {
		response.Report = awaitReport(r.Context(), reports)
	}

	if err != nil {
		response.Error = err.Error()
		var broadcastErr *broadcaster.BroadcastError
		switch {
		case errors.As(err, &broadcastErr):
			writeJSON(w, http.StatusUnprocessableEntity, response)
		case errors.Is(err, broadcaster.ErrNoResponse):
			writeJSON(w, http.StatusBadGateway, response)
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			writeJSON(w, http.StatusGatewayTimeout, response)
		default:
			writeJSON(w, http.StatusBadRequest, response)
		}
		return
	}

	logger.Infof("Broadcast transaction %s", result.TxId)
	response.Result = result
	writeOK(w, response)
}

func (server *Server) status(w http.ResponseWriter, r *http.Request) {
	txId := chi.URLParam(r, "txid")
	verbose, _ := strconv.ParseBool(r.URL.Query().Get("verbose"))
	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))

	reports := make(chan broadcaster.StatusReport, 1)
	result, err := server.aggregator.Status(r.Context(), broadcaster.StatusRequest{
		TxId:    txId,
		Verbose: verbose,
		Callback: func(report broadcaster.StatusReport) {
			reports <- report
		},
	})
	if err != nil {
		if errors.Is(err, broadcaster.ErrInvalidTxId) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusGatewayTimeout, err.Error())
		}
		return
	}

	var response api.StatusResponse
	if wait {
		response.Report = awaitReport(r.Context(), reports)
	}
	if result == nil {
		response.Error = "transaction not found"
		writeJSON(w, http.StatusNotFound, response)
		return
	}
	response.Result = result
	writeOK(w, response)
}

func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		field := validationErrors[0]
		return "invalid request: " + field.Field() + " failed on " + field.Tag()
	}
	return "invalid request: " + err.Error()
}
