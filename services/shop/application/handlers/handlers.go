// Package handlers exposes the shop over HTTP for the conversational layer.
// Every handler reads the caller's conversation from the session; handlers
// that change it save the session before writing the response.
package handlers

import (
	"net/http"

	"github.com/ghuser/voiceshop/pkg/errhttp"
	"github.com/ghuser/voiceshop/pkg/logger"
	"github.com/ghuser/voiceshop/pkg/session"
	appsvcs "github.com/ghuser/voiceshop/services/shop/application/services"
	"github.com/ghuser/voiceshop/services/shop/domain/models"
)

// Env carries what every shop handler needs.
type Env struct {
	Svcs         *appsvcs.Services
	Sessions     *session.Manager
	Log          logger.Logger
	IsProduction bool
}

func (e *Env) writeError(w http.ResponseWriter, err error) {
	errhttp.WriteError(w, err, e.IsProduction)
}

// conversation loads the session and rehydrates the last-shown products
// from the catalog. Ids no longer in the catalog are dropped.
func (e *Env) conversation(r *http.Request) models.SessionContext {
	st := e.Sessions.Load(r)
	shown := make([]models.Product, 0, len(st.LastShownIDs))
	for _, id := range st.LastShownIDs {
		if p, ok := e.Svcs.Catalog.Find(id); ok {
			shown = append(shown, p)
		}
	}
	return models.SessionContext{
		LastShown: shown,
		Customer: models.Customer{
			Name:                 st.CustomerName,
			Address:              st.CustomerAddress,
			DeliveryInstructions: st.DeliveryInstructions,
		},
	}
}

// saveConversation writes sc back to the session. Products are stored by id.
func (e *Env) saveConversation(w http.ResponseWriter, r *http.Request, sc models.SessionContext) error {
	st := session.State{
		LastShownIDs:         make([]string, len(sc.LastShown)),
		CustomerName:         sc.Customer.Name,
		CustomerAddress:      sc.Customer.Address,
		DeliveryInstructions: sc.Customer.DeliveryInstructions,
	}
	for i, p := range sc.LastShown {
		st.LastShownIDs[i] = p.ID
	}
	return e.Sessions.Save(w, r, st)
}
