// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column names used by the Postgres
// repositories, so that SQL strings are assembled from one definition.
package schema
