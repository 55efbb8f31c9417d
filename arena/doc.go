// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package arena implements a growable slot store for suspended tasks with
// stable integer identifiers and O(1) slot reuse through intrusive LIFO
// free and ready lists.
package arena
