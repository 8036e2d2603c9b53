/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// SQLErrorKind is a coarse, dialect-independent category of a driver error.
// It is only used to annotate log output; errors are never rewritten.
type SQLErrorKind int

const (
	UnknownErr SQLErrorKind = iota
	NoRowsErr
	NoColumnErr
	NoTableErr
	NoDatabaseErr
	DuplicateKeyErr
	NotNullViolationErr
	ForeignKeyViolationErr
	SyntaxErr
)

func (k SQLErrorKind) String() string {
	switch k {
	case NoRowsErr:
		return "no_rows"
	case NoColumnErr:
		return "no_column"
	case NoTableErr:
		return "no_table"
	case NoDatabaseErr:
		return "no_database"
	case DuplicateKeyErr:
		return "duplicate_key"
	case NotNullViolationErr:
		return "not_null_violation"
	case ForeignKeyViolationErr:
		return "foreign_key_violation"
	case SyntaxErr:
		return "syntax"
	default:
		return "unknown"
	}
}

// ClassifySQLError reports whether err looks like a database error and, if
// so, which kind. MySQL errors are matched by number, postgres and sqlite
// errors by SQLSTATE or message text.
func ClassifySQLError(err error) (bool, SQLErrorKind) {
	if err == nil {
		return false, UnknownErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return true, NoRowsErr
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1054:
			return true, NoColumnErr
		case 1146:
			return true, NoTableErr
		case 1049:
			return true, NoDatabaseErr
		case 1062:
			return true, DuplicateKeyErr
		case 1048:
			return true, NotNullViolationErr
		case 1216, 1217, 1451, 1452:
			return true, ForeignKeyViolationErr
		case 1064:
			return true, SyntaxErr
		default:
			return true, UnknownErr
		}
	}

	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "sqlstate 42703"),
		strings.Contains(s, "undefined column"),
		strings.Contains(s, "no such column"),
		strings.Contains(s, "column") && strings.Contains(s, "does not exist"):
		return true, NoColumnErr
	case strings.Contains(s, "sqlstate 42p01"),
		strings.Contains(s, "undefined table"),
		strings.Contains(s, "no such table"),
		strings.Contains(s, "relation") && strings.Contains(s, "does not exist"):
		return true, NoTableErr
	case strings.Contains(s, "sqlstate 3d000"),
		strings.Contains(s, "database") && strings.Contains(s, "does not exist"):
		return true, NoDatabaseErr
	case strings.Contains(s, "duplicate key value"),
		strings.Contains(s, "unique constraint failed"),
		strings.Contains(s, "sqlstate 23505"):
		return true, DuplicateKeyErr
	case strings.Contains(s, "not-null constraint"),
		strings.Contains(s, "not null constraint failed"),
		strings.Contains(s, "sqlstate 23502"):
		return true, NotNullViolationErr
	case strings.Contains(s, "foreign key constraint failed"),
		strings.Contains(s, "violates foreign key constraint"),
		strings.Contains(s, "sqlstate 23503"):
		return true, ForeignKeyViolationErr
	case strings.Contains(s, "syntax error"),
		strings.Contains(s, "sqlstate 42601"):
		return true, SyntaxErr
	}
	return false, UnknownErr
}
