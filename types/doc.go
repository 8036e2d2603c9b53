// Package types holds small generic value types shared by repositories.
package types
