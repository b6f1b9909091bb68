// Package cards models visiting card records and talks to the webhook
// service that stores them.
package cards

import "strings"

// Card is one scanned business card as returned by the webhook service.
// Cards are read-only on the client side.
type Card struct {
	ID          int64  `json:"id" csv:"id"`
	ImageURL    string `json:"visiting_card_url" csv:"image_url"`
	Name        string `json:"name" csv:"name"`
	Company     string `json:"company" csv:"company"`
	Designation string `json:"designation" csv:"designation"`
	Address     string `json:"address" csv:"address"`
	Email       string `json:"email" csv:"email"`
	Phone       string `json:"phone" csv:"phone"`
	Website     string `json:"website" csv:"website"`
	CreatedAt   string `json:"created_at" csv:"created_at"`
	UpdatedAt   string `json:"updated_at" csv:"updated_at"`
}

// ListResponse is the envelope shared by the get-all and search endpoints.
type ListResponse struct {
	Data struct {
		VisitingCard []Card `json:"visiting_card"`
	} `json:"data"`
}

// Cards returns the decoded list, never nil.
func (r ListResponse) Cards() []Card {
	if r.Data.VisitingCard == nil {
		return []Card{}
	}
	return r.Data.VisitingCard
}

// LinkKind identifies the contact channel a Link points at.
type LinkKind string

const (
	LinkEmail   LinkKind = "email"
	LinkPhone   LinkKind = "phone"
	LinkWebsite LinkKind = "website"
	LinkAddress LinkKind = "address"
)

// Link is a rendered contact line. Href is empty for plain text (address).
type Link struct {
	Kind  LinkKind
	Label string
	Href  string
}

// PhoneNumbers splits the comma separated phone field into trimmed numbers.
func (c Card) PhoneNumbers() []string {
	if strings.TrimSpace(c.Phone) == "" {
		return nil
	}
	parts := strings.Split(c.Phone, ",")
	numbers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			numbers = append(numbers, p)
		}
	}
	return numbers
}

// Contacts returns the non-empty contact lines of a card in display order:
// email, phone, website, address. All phone numbers share one line and the
// first number is the dial target.
func Contacts(c Card) []Link {
	var links []Link
	if c.Email != "" {
		links = append(links, Link{Kind: LinkEmail, Label: c.Email, Href: "mailto:" + c.Email})
	}
	if numbers := c.PhoneNumbers(); len(numbers) > 0 {
		links = append(links, Link{
			Kind:  LinkPhone,
			Label: strings.Join(numbers, " / "),
			Href:  "tel:" + numbers[0],
		})
	}
	if c.Website != "" {
		links = append(links, Link{Kind: LinkWebsite, Label: c.Website, Href: c.Website})
	}
	if c.Address != "" {
		links = append(links, Link{Kind: LinkAddress, Label: c.Address})
	}
	return links
}
