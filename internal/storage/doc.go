/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage persists the single local drawing snapshot.
// A drawing is encoded as a JSON array of command records and validated against an embedded JSON schema on load.
// Two backends hold the record: an embedded SQLite database (the default, one row per key) and a plain JSON file
// written transactionally with a backup of the previous version.
package storage
