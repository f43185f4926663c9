/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

// QueryState is the read-only snapshot of a read operation's state that the
// adapters observe. The operation engine itself (transport, caching, retry)
// stays entirely behind this shape.
type QueryState struct {
	// IsLoading reports the first-ever fetch being in flight, no data yet.
	IsLoading bool
	// IsFetching reports any fetch in flight, including background refreshes
	// of already-present data. IsLoading implies IsFetching.
	IsFetching bool
	// IsError reports that the last attempt failed.
	IsError bool
}

// MutationState is the read-only snapshot of a write operation's state.
type MutationState struct {
	// IsPending reports a write in flight.
	IsPending bool
	// IsError reports that the last attempt failed.
	IsError bool
}

// PaginatedState extends QueryState with page-fetch flags for paginated
// reads.
type PaginatedState struct {
	QueryState

	// IsFetchingNextPage reports a next-page fetch in flight.
	IsFetchingNextPage bool
	// IsFetchingPreviousPage reports a previous-page fetch in flight.
	IsFetchingPreviousPage bool
}
