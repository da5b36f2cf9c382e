package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/izzyreal/raincast/internal/features"
	"github.com/izzyreal/raincast/internal/server/httpx"
)

const maxPredictForm = 1 << 20

func (a *app) predictHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPredictForm)
	if err := r.ParseMultipartForm(maxPredictForm); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		httpx.WriteError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	vec, err := a.catalog.Parse(r.Form)
	if err != nil {
		var ve *features.ValueError
		if errors.As(err, &ve) {
			httpx.WriteError(w, http.StatusBadRequest, ve.Error())
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := a.predictor.Predict(vec)
	if err != nil {
		slog.Error("prediction failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Prediction failed")
		return
	}

	user := ""
	if claims, ok := sessionFrom(r.Context()); ok {
		user = claims.Username
	}
	slog.Info("prediction served", "user", user, "features", res.FeatureCount, "result", res.ResultClass, "confidence", res.Confidence)
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (a *app) modelInfoHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, a.predictor.Info())
}
