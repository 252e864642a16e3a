package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/margauxcellars/cellar-backend/api/middleware"
	"github.com/margauxcellars/cellar-backend/api/responses"
	"github.com/margauxcellars/cellar-backend/api/validators"
	"github.com/margauxcellars/cellar-backend/internal/offers"
	pkgerrors "github.com/margauxcellars/cellar-backend/pkg/errors"
	"github.com/margauxcellars/cellar-backend/pkg/logger"
)

// PortalWineList serves an offer to the client. The UUID in the URL is the
// only credential; archived or unknown lists both read as 404.
func PortalWineList(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "uuid"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "wine list not found"))
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithListUUID(ctx, id.String())
		}

		detail, err := svc.GetByUUID(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if lang := middleware.LanguageFromContext(ctx); lang != "" {
			w.Header().Set("Content-Language", lang)
		}
		responses.WriteSuccess(w, detail)
	}
}

// Item pairs are not validated here: the service skips unknown ids and clamps
// out-of-range quantities per item, so every decoded pair is forwarded as-is.
type portalSubmitItem struct {
	ItemID    uint `json:"item_id"`
	AcceptQty int  `json:"accept_qty"`
}

type portalSubmitRequest struct {
	Items []portalSubmitItem `json:"items"`
}

// PortalSubmit records the client's accepted quantities and moves the list to
// submitted. Responses use the flat portal shape.
func PortalSubmit(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "uuid"))
		if err != nil {
			responses.WritePortalError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "wine list not found"))
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithListUUID(ctx, id.String())
		}

		var body portalSubmitRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WritePortalError(ctx, logg, w, err)
			return
		}

		acceptances := make([]offers.AcceptanceInput, 0, len(body.Items))
		for _, item := range body.Items {
			acceptances = append(acceptances, offers.AcceptanceInput{
				ItemID:    item.ItemID,
				AcceptQty: item.AcceptQty,
			})
		}

		if err := svc.SubmitAcceptances(ctx, id, acceptances); err != nil {
			responses.WritePortalError(ctx, logg, w, err)
			return
		}

		responses.WritePortalSuccess(w)
	}
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid uuid").WithDetails(map[string]any{"value": value})
		}
		ids = append(ids, id)
	}
	return ids, nil
}
