// Package geoipx reads MaxMind-like databases to map a network
// address to a country code, an AS number, and an AS organization.
// The database is optional: a nil [*DB] is valid and every lookup
// on it fails with [ErrNoDatabase].
package geoipx

import (
	"errors"
	"net"

	"github.com/oschwald/maxminddb-golang"
)

// ErrNoDatabase indicates that no database is configured.
var ErrNoDatabase = errors.New("geoipx: no database configured")

// ErrInvalidIP indicates that the input is not a valid IP address.
var ErrInvalidIP = errors.New("geoipx: invalid IP address")

// DB is an open geolocation database. Construct using [Open]. A nil
// DB is valid and behaves like an always-failing database.
type DB struct {
	reader *maxminddb.Reader
}

// Open opens the database at the given path. An empty path yields a
// nil [*DB] and no error, so a missing database configuration is not
// a startup failure.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, nil
	}
	reader, err := maxminddb.Open(path)
	if err != nil {
		return nil, err
	}
	return &DB{reader: reader}, nil
}

// Close closes the underlying database reader.
func (db *DB) Close() error {
	if db == nil || db.reader == nil {
		return nil
	}
	return db.reader.Close()
}

// record is the shape of the entries we read from the database.
type record struct {
	Country struct {
		IsoCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
	AutonomousSystemNumber       uint   `maxminddb:"autonomous_system_number"`
	AutonomousSystemOrganization string `maxminddb:"autonomous_system_organization"`
}

// lookup reads the record for the given IP address.
func (db *DB) lookup(ip string) (*record, error) {
	if db == nil || db.reader == nil {
		return nil, ErrNoDatabase
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, ErrInvalidIP
	}
	var rec record
	if err := db.reader.Lookup(parsed, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// LookupASN maps ip to an AS number and an AS organization name.
func (db *DB) LookupASN(ip string) (asn uint, org string, err error) {
	rec, err := db.lookup(ip)
	if err != nil {
		return 0, "", err
	}
	return rec.AutonomousSystemNumber, rec.AutonomousSystemOrganization, nil
}

// LookupCC maps ip to a country code.
func (db *DB) LookupCC(ip string) (cc string, err error) {
	rec, err := db.lookup(ip)
	if err != nil {
		return "", err
	}
	return rec.Country.IsoCode, nil
}
