// Package kv implementa el puerto repository.KeyValue sobre un backend de bytes
// ordenado por clave. Los backends concretos viven en postgres, sqlite y redis;
// Memory sirve para desarrollo y tests.
package kv

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrKeyNotFound lo devuelven los backends cuando la clave no existe.
var ErrKeyNotFound = errors.New("kv: clave no encontrada")

// Buckets (mapas lógicos) usados por el CRM.
const (
	BucketCustomers    = "customers"
	BucketInteractions = "interactions"
	BucketPurchases    = "purchases"
)

// Backend almacena valores opacos agrupados por bucket.
// Scan devuelve los valores del bucket ordenados por clave.
type Backend interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, value []byte) error
	Delete(ctx context.Context, bucket, key string) error
	Scan(ctx context.Context, bucket string) ([][]byte, error)
	Ping(ctx context.Context) error
	Close() error
}

// CustomerScanner es una capacidad opcional del backend: devuelve, ordenados por
// clave, los valores del bucket cuyo campo customer_id coincide.
type CustomerScanner interface {
	ScanByCustomer(ctx context.Context, bucket, customerID string) ([][]byte, error)
}

// PurchaseTotaler es una capacidad opcional del backend: suma quantity * price de
// las compras del cliente guardadas en bucket, sin decodificarlas.
type PurchaseTotaler interface {
	PurchaseTotal(ctx context.Context, bucket, customerID string) (decimal.Decimal, error)
}
