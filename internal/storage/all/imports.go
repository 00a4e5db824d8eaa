// Package all registers every built-in mirror backend with the storage
// factory. Import it for side effects only:
//
//	import _ "salesclean/internal/storage/all"
package all

import (
	_ "salesclean/internal/storage/postgres"
	_ "salesclean/internal/storage/sqlite"
)
