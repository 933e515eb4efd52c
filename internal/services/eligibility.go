package services

import "github.com/farellandr/eventstay/internal/models"

// hotelEligibility describes whether a ticket grants access to hotel rooms.
type hotelEligibility int

const (
	hotelEligible hotelEligibility = iota
	ticketNotPaid
	ticketWithoutHotel
	ticketIsRemote
)

func (e hotelEligibility) String() string {
	switch e {
	case ticketNotPaid:
		return "ticket has not been paid"
	case ticketWithoutHotel:
		return "ticket type does not include a hotel"
	case ticketIsRemote:
		return "ticket type is remote"
	default:
		return "eligible"
	}
}

// checkHotelEligibility expects the ticket to carry its TicketType. Only a
// PAID, hotel-inclusive, in-person ticket is eligible.
func checkHotelEligibility(ticket *models.Ticket) hotelEligibility {
	switch {
	case !ticket.IsPaid():
		return ticketNotPaid
	case ticket.TicketType == nil || !ticket.TicketType.IncludesHotel:
		return ticketWithoutHotel
	case ticket.TicketType.IsRemote:
		return ticketIsRemote
	default:
		return hotelEligible
	}
}
