package constants

const (
	DropFlavorTable = `
	DROP TABLE IF EXISTS flavor
	`

	// CreateFlavorTable is also used with IF NOT EXISTS when the reset is
	// disabled, see CreateFlavorTableIfMissing.
	CreateFlavorTable = `
	CREATE TABLE flavor(
		id SERIAL PRIMARY KEY,
		name VARCHAR(255),
		is_favorite BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT now(),
		updated_at TIMESTAMP DEFAULT now()
	)
	`

	CreateFlavorTableIfMissing = `
	CREATE TABLE IF NOT EXISTS flavor(
		id SERIAL PRIMARY KEY,
		name VARCHAR(255),
		is_favorite BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT now(),
		updated_at TIMESTAMP DEFAULT now()
	)
	`

	SeedChocolate = `
	INSERT INTO flavor(name, is_favorite) VALUES('Chocolate', FALSE)
	`

	SeedRaspberryCheesecake = `
	INSERT INTO flavor(is_favorite, name) VALUES(TRUE, 'Raspberry Cheesecake')
	`

	SeedVanilla = `
	INSERT INTO flavor(name) VALUES('Vanilla')
	`

	InsertFlavor = `
	INSERT INTO flavor(name, is_favorite) VALUES($1, COALESCE($2, FALSE)) RETURNING *
	`

	// created_at has no unique guarantee, id breaks ties
	ListFlavors = `
	SELECT * FROM flavor ORDER BY created_at DESC, id DESC
	`

	GetFlavorByID = `
	SELECT * FROM flavor WHERE id = $1
	`

	UpdateFlavor = `
	UPDATE flavor SET name = $1, is_favorite = COALESCE($2, FALSE), updated_at = now() WHERE id = $3 RETURNING *
	`

	DeleteFlavor = `
	DELETE FROM flavor WHERE id = $1
	`
)

// SeedFlavors are inserted in order after every reset.
var SeedFlavors = []string{SeedChocolate, SeedRaspberryCheesecake, SeedVanilla}
