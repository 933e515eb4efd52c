package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// TicketPass is the content of a ticket QR code.
type TicketPass struct {
	TicketID     uint
	EnrollmentID uint
	Signature    string
}

func SignTicketPass(ticketID, enrollmentID uint, secretKey string) string {
	data := fmt.Sprintf("%d:%d", ticketID, enrollmentID)
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func EncodeTicketPass(ticketID, enrollmentID uint, secretKey string) string {
	return fmt.Sprintf("ticket:%d;enrollment:%d;signature:%s",
		ticketID,
		enrollmentID,
		SignTicketPass(ticketID, enrollmentID, secretKey),
	)
}

func ParseTicketPass(data string) (*TicketPass, error) {
	parts := strings.Split(data, ";")
	if len(parts) != 3 ||
		!strings.HasPrefix(parts[0], "ticket:") ||
		!strings.HasPrefix(parts[1], "enrollment:") ||
		!strings.HasPrefix(parts[2], "signature:") {
		return nil, fmt.Errorf("invalid ticket pass format")
	}

	ticketID, err := strconv.ParseUint(strings.TrimPrefix(parts[0], "ticket:"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket id in pass")
	}
	enrollmentID, err := strconv.ParseUint(strings.TrimPrefix(parts[1], "enrollment:"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid enrollment id in pass")
	}

	return &TicketPass{
		TicketID:     uint(ticketID),
		EnrollmentID: uint(enrollmentID),
		Signature:    strings.TrimPrefix(parts[2], "signature:"),
	}, nil
}

func (p *TicketPass) Valid(secretKey string) bool {
	expected := SignTicketPass(p.TicketID, p.EnrollmentID, secretKey)
	return hmac.Equal([]byte(expected), []byte(p.Signature))
}
