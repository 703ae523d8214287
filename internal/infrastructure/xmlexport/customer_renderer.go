// Package xmlexport serializa un cliente con sus interacciones y compras a XML canónico (C14N).
package xmlexport

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/crm-api/internal/application/crm"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// Header declaración que antecede al documento canónico (C14N la omite).
const Header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

var _ crm.DocumentRenderer = (*CustomerRenderer)(nil)

// CustomerRenderer implementa crm.DocumentRenderer produciendo XML.
type CustomerRenderer struct{}

// NewCustomerRenderer construye el renderer.
func NewCustomerRenderer() *CustomerRenderer { return &CustomerRenderer{} }

// Render arma el árbol con etree y lo canonicaliza.
func (r *CustomerRenderer) Render(_ context.Context, doc *crm.CustomerDocument) ([]byte, error) {
	tree := etree.NewDocument()
	root := tree.CreateElement("customer")
	root.CreateAttr("id", doc.Customer.ID)
	root.CreateAttr("generated_at", formatTime(doc.GeneratedAt))

	c := doc.Customer
	addText(root, "name", c.Name)
	addText(root, "company", c.Company)
	addText(root, "email", c.Email)
	addText(root, "phone", c.Phone)
	addText(root, "created_at", formatTime(c.CreatedAt))
	addText(root, "updated_at", formatTime(c.UpdatedAt))

	interactions := root.CreateElement("interactions")
	interactions.CreateAttr("count", strconv.Itoa(len(doc.Interactions)))
	for _, i := range doc.Interactions {
		addInteraction(interactions, i)
	}

	purchases := root.CreateElement("purchases")
	purchases.CreateAttr("count", strconv.Itoa(len(doc.Purchases)))
	purchases.CreateAttr("total", doc.Total.StringFixed(2))
	for _, p := range doc.Purchases {
		addPurchase(purchases, p)
	}

	raw, err := tree.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar: %w", err)
	}
	canonical, err := canonicalize(raw)
	if err != nil {
		return nil, fmt.Errorf("xmlexport: canonicalizar: %w", err)
	}
	return append([]byte(Header), canonical...), nil
}

func addInteraction(parent *etree.Element, i entity.Interaction) {
	el := parent.CreateElement("interaction")
	el.CreateAttr("id", i.ID)
	addText(el, "date", i.Date)
	addText(el, "type", i.InteractionType)
	addText(el, "status", i.Status)
	addText(el, "description", i.Description)
	addText(el, "comments", i.Comments)
}

func addPurchase(parent *etree.Element, p entity.Purchase) {
	el := parent.CreateElement("purchase")
	el.CreateAttr("id", p.ID)
	addText(el, "date", p.Date)
	addText(el, "product", p.Product)
	addText(el, "quantity", p.Quantity.String())
	addText(el, "price", p.Price.StringFixed(2))
	addText(el, "subtotal", p.Subtotal().StringFixed(2))
}

func addText(parent *etree.Element, tag, value string) {
	parent.CreateElement(tag).SetText(value)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
