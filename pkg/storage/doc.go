// Package storage provides persistent storage for the fridgechef tools.
// It uses BadgerDB as the embedded database and keeps the imported recipe
// catalogue, per-chat pantries and cached generated recipes.
package storage
