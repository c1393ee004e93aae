package database

import (
	"context"
	"database/sql"
)

// schema lists the idempotent DDL applied at startup. Ids are uuid strings
// assigned by the repository layer, so every primary key is CHAR(36).
// Check-in/check-out dates are stored as the strings clients submit; the
// API never computes with them.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS hosts (
		id              CHAR(36)     NOT NULL PRIMARY KEY,
		username        VARCHAR(191) NOT NULL UNIQUE,
		password        VARCHAR(191) NOT NULL,
		name            VARCHAR(191) NOT NULL,
		email           VARCHAR(191) NOT NULL,
		phone_number    VARCHAR(64)  NOT NULL,
		profile_picture VARCHAR(512) NOT NULL,
		about_me        TEXT         NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS properties (
		id              CHAR(36)     NOT NULL PRIMARY KEY,
		title           VARCHAR(191) NOT NULL,
		description     TEXT         NOT NULL,
		location        VARCHAR(191) NOT NULL,
		price_per_night DOUBLE       NOT NULL,
		bedroom_count   INT          NOT NULL,
		bath_room_count INT          NOT NULL,
		max_guest_count INT          NOT NULL,
		host_id         CHAR(36)     NOT NULL,
		rating          DOUBLE       NOT NULL,
		CONSTRAINT fk_properties_host FOREIGN KEY (host_id) REFERENCES hosts (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id               CHAR(36)    NOT NULL PRIMARY KEY,
		user_id          CHAR(36)    NOT NULL,
		property_id      CHAR(36)    NOT NULL,
		checkin_date     VARCHAR(64) NOT NULL,
		checkout_date    VARCHAR(64) NOT NULL,
		number_of_guests INT         NOT NULL,
		total_price      DOUBLE      NOT NULL,
		booking_status   VARCHAR(32) NOT NULL,
		CONSTRAINT fk_bookings_property FOREIGN KEY (property_id) REFERENCES properties (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id          CHAR(36) NOT NULL PRIMARY KEY,
		rating      DOUBLE   NOT NULL,
		comment     TEXT     NOT NULL,
		user_id     CHAR(36) NOT NULL,
		property_id CHAR(36) NOT NULL,
		CONSTRAINT fk_reviews_property FOREIGN KEY (property_id) REFERENCES properties (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the application tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
