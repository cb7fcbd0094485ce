package services

import (
	"context"
	"fmt"

	"github.com/gatherly/api/internal/models"
)

type OfferService struct {
	offersRepo  models.OffersRepo
	eventsRepo  models.EventsRepo
	profileRepo models.ProfileRepo
}

func NewOfferService(offersRepo models.OffersRepo, eventsRepo models.EventsRepo, profileRepo models.ProfileRepo) *OfferService {
	return &OfferService{
		offersRepo:  offersRepo,
		eventsRepo:  eventsRepo,
		profileRepo: profileRepo,
	}
}

// SubmitOffer creates a submitted offer from a provider against an event.
// The event owner id is denormalized onto the offer at submit time.
func (os *OfferService) SubmitOffer(ctx context.Context, eventID, providerID, description string, price float64) (*models.Offer, error) {
	event, err := os.eventsRepo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up event: %v", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event not found")
	}
	if event.OwnerID == providerID {
		return nil, fmt.Errorf("you cannot submit an offer against your own event")
	}

	offer := &models.Offer{
		EventID:      eventID,
		EventOwnerID: event.OwnerID,
		ProviderID:   providerID,
		Description:  description,
		Price:        price,
	}
	return os.offersRepo.SubmitOffer(ctx, offer)
}

// SetStatus moves an offer to a terminal state. Only the owner of the
// referenced event may decide, and only while the offer is still submitted.
func (os *OfferService) SetStatus(ctx context.Context, offerID, actorID string, status models.OfferStatus) (*models.Offer, error) {
	if !status.IsValid() || !status.IsTerminal() {
		return nil, models.ErrInvalidTransition
	}

	offer, err := os.offersRepo.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, fmt.Errorf("offer not found")
	}
	if offer.EventOwnerID != actorID {
		return nil, fmt.Errorf("only the event owner can decide an offer")
	}

	return os.offersRepo.SetOfferStatus(ctx, offerID, status)
}

// ListReceived returns offers against any event owned by ownerID, joined
// client-side with the event and provider records. Joins are best-effort:
// a dangling reference yields a nil join field, never a failed listing.
func (os *OfferService) ListReceived(ctx context.Context, ownerID string) ([]*models.OfferView, error) {
	offers, err := os.offersRepo.ListOffersReceived(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return os.joinOffers(ctx, offers), nil
}

// ListSent returns offers submitted by providerID via its own query path,
// joined the same way as ListReceived.
func (os *OfferService) ListSent(ctx context.Context, providerID string) ([]*models.OfferView, error) {
	offers, err := os.offersRepo.ListOffersSent(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return os.joinOffers(ctx, offers), nil
}

func (os *OfferService) joinOffers(ctx context.Context, offers []*models.Offer) []*models.OfferView {
	views := make([]*models.OfferView, 0, len(offers))
	for _, offer := range offers {
		view := &models.OfferView{Offer: offer}

		// Join errors are swallowed deliberately: the offer row still renders
		// with its join fields absent.
		if event, err := os.eventsRepo.GetEvent(ctx, offer.EventID); err == nil {
			view.Event = event
		}
		if provider, err := os.profileRepo.Resolve(ctx, offer.ProviderID); err == nil {
			view.Provider = provider
		}

		views = append(views, view)
	}
	return views
}
