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

package types

// Optional holds either a value or nothing. The zero value is empty.
type Optional[T any] struct {
	v *T
}

// Some wraps v. A nil v yields an empty Optional.
func Some[T any](v *T) Optional[T] {
	return Optional[T]{v: v}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (*T, bool) {
	return o.v, o.v != nil
}

func (o Optional[T]) IsPresent() bool {
	return o.v != nil
}

// MustGet returns the value and panics if it is absent.
func (o Optional[T]) MustGet() *T {
	if o.v == nil {
		panic("cannot get value of empty optional")
	}
	return o.v
}

// OrElse returns the value, or def when absent.
func (o Optional[T]) OrElse(def *T) *T {
	if o.v == nil {
		return def
	}
	return o.v
}
