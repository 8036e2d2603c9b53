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
	"sort"
	"sync"
)

var defaultRegistry = NewModelRegistry()

// ModelRegistry holds bun model instances whose tables are created by the
// base-table migration. Lower priority values are created first; models
// with equal priority keep registration order.
type ModelRegistry struct {
	mu     sync.RWMutex
	models []registeredModel
}

type registeredModel struct {
	instance interface{}
	priority int
}

func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{}
}

// Register adds a struct pointer compatible with bun, e.g. (*Album)(nil).
func (r *ModelRegistry) Register(instance interface{}, priority int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models = append(r.models, registeredModel{instance: instance, priority: priority})
}

func (r *ModelRegistry) Instances() []interface{} {
	r.mu.RLock()
	models := make([]registeredModel, len(r.models))
	copy(models, r.models)
	r.mu.RUnlock()

	sort.SliceStable(models, func(i, j int) bool {
		return models[i].priority < models[j].priority
	})
	instances := make([]interface{}, len(models))
	for i, m := range models {
		instances[i] = m.instance
	}
	return instances
}

// RegisterModel adds a model to the default registry.
func RegisterModel(instance interface{}, priority int) {
	defaultRegistry.Register(instance, priority)
}
