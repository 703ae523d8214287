package xmlexport_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/crm"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/infrastructure/xmlexport"
)

func sampleDocument() *crm.CustomerDocument {
	ts := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)
	return &crm.CustomerDocument{
		Customer: entity.Customer{
			ID: "c1", Name: "Ann & Co", Company: "Acme", Email: "ann@x.com", Phone: "+15551234567",
			CreatedAt: ts, UpdatedAt: ts,
		},
		Interactions: []entity.Interaction{{
			ID: "i1", CustomerID: "c1", Date: "2024-01-02", InteractionType: "call", Status: "Open",
		}},
		Purchases: []entity.Purchase{{
			ID: "p1", CustomerID: "c1", Date: "2024-01-01", Product: "Widget",
			Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(10),
		}},
		Total:       decimal.NewFromInt(20),
		GeneratedAt: ts,
	}
}

func TestCustomerRenderer_Estructura(t *testing.T) {
	out, err := xmlexport.NewCustomerRenderer().Render(context.Background(), sampleDocument())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte(xmlexport.Header)))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.Root()
	require.NotNil(t, root)

	assert.Equal(t, "customer", root.Tag)
	assert.Equal(t, "c1", root.SelectAttrValue("id", ""))
	assert.Equal(t, "Ann & Co", root.SelectElement("name").Text(), "el texto se escapa y se recupera")

	purchases := root.SelectElement("purchases")
	require.NotNil(t, purchases)
	assert.Equal(t, "1", purchases.SelectAttrValue("count", ""))
	assert.Equal(t, "20.00", purchases.SelectAttrValue("total", ""))
	assert.Equal(t, "20.00", purchases.SelectElement("purchase").SelectElement("subtotal").Text())

	interactions := root.SelectElement("interactions")
	require.NotNil(t, interactions)
	assert.Equal(t, "Open", interactions.SelectElement("interaction").SelectElement("status").Text())
}

func TestCustomerRenderer_Canonico(t *testing.T) {
	r := xmlexport.NewCustomerRenderer()
	a, err := r.Render(context.Background(), sampleDocument())
	require.NoError(t, err)
	b, err := r.Render(context.Background(), sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, a, b, "misma entrada, mismos bytes")
	body := strings.TrimPrefix(string(a), xmlexport.Header)
	assert.NotContains(t, body, "/>", "C14N expande los elementos vacíos")
	assert.Contains(t, body, "<description></description>")
}
