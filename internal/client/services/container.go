package services

import (
	"fmt"

	"github.com/dmitrijs2005/travelbook/internal/client/client"
	"github.com/dmitrijs2005/travelbook/internal/client/publish"
	"github.com/dmitrijs2005/travelbook/internal/client/resolver"
	"github.com/dmitrijs2005/travelbook/internal/client/store"
	"github.com/dmitrijs2005/travelbook/internal/common"
	"github.com/dmitrijs2005/travelbook/internal/logging"
	"github.com/dmitrijs2005/travelbook/internal/timex"
)

// Kind names a service the UI can ask the container for.
type Kind int

const (
	KindTrips Kind = iota
	KindEntries
	KindImages
	KindAppState
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindTrips:
		return "trips"
	case KindEntries:
		return "entries"
	case KindImages:
		return "images"
	case KindAppState:
		return "app_state"
	case KindRemote:
		return "remote"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Deps are the collaborators every service is built from.
type Deps struct {
	Store    *store.Store
	Remote   client.Client
	Resolver resolver.Resolver
	Clock    timex.Clock
	Logger   logging.Logger
}

// Container holds one instance of each service, built once at startup.
type Container struct {
	Trips    TripService
	Entries  EntryService
	Images   ImageService
	AppState AppStateService
	Remote   RemoteService
}

func NewContainer(d Deps) *Container {
	if d.Clock == nil {
		d.Clock = timex.SystemClock{}
	}
	return &Container{
		Trips: NewTripService(d.Store, d.Clock, d.Logger.With("service", KindTrips.String())),
		Entries: NewEntryService(d.Store,
			publish.NewPublisher(d.Remote, d.Logger),
			publish.NewEncoder(d.Resolver, d.Logger),
			d.Clock,
			d.Logger.With("service", KindEntries.String())),
		Images:   NewImageService(d.Store),
		AppState: NewAppStateService(d.Store),
		Remote:   NewRemoteService(d.Remote, d.Logger.With("service", KindRemote.String())),
	}
}

// Service returns the service registered for k.
func (c *Container) Service(k Kind) (any, error) {
	switch k {
	case KindTrips:
		return c.Trips, nil
	case KindEntries:
		return c.Entries, nil
	case KindImages:
		return c.Images, nil
	case KindAppState:
		return c.AppState, nil
	case KindRemote:
		return c.Remote, nil
	default:
		return nil, fmt.Errorf("service %s: %w", k, common.ErrInvalidArgument)
	}
}
