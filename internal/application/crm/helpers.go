// Package crm contiene los casos de uso del CRM: clientes, interacciones y compras.
//
// Las referencias de un cliente a sus interacciones y compras se derivan de los
// almacenes hijos (campo CustomerID) al leer; nunca se guardan en el registro del
// cliente, así que no pueden divergir de los almacenes hijos.
package crm

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/crm-api/internal/domain"
)

// now devuelve la hora actual en UTC (sin lectura monotónica, estable al serializar).
func now() time.Time {
	return time.Now().UTC()
}

// equalFold compara dos textos sin distinguir mayúsculas (coincidencia exacta, no substring).
func equalFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s con id=%s", domain.ErrNotFound, kind, id)
}
