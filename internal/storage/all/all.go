// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete backend to run, which in
// turn register their factories with the storage package. Importing it makes
// the following storage kinds available at runtime:
//
//   - "sqlite"   (tablemill/internal/storage/sqlite)
//   - "postgres" (tablemill/internal/storage/postgres)
//
// A binary that wants only a subset of backends can blank-import the needed
// backend packages directly instead of this one.
package all

import (
	_ "tablemill/internal/storage/postgres"
	_ "tablemill/internal/storage/sqlite"
)
