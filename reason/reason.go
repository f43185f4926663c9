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

package reason

// Rule pairs an operation-state condition with the message to show while it
// holds. An empty Reason means "no specific message for this state" and the
// rule is skipped even when its condition is true.
type Rule struct {
	// When is the condition under which Reason applies.
	When bool
	// Reason is the message for this state, or "" for none.
	Reason string
}

// Resolve scans rules in order and returns the Reason of the first rule whose
// condition is true and whose Reason is non-empty, or def if none matches.
//
// Order is the caller's tie-break: callers list states from most to least
// specific (e.g. loading before fetching before error); Resolve infers no
// precedence of its own. Pure and total.
func Resolve(def string, rules []Rule) string {
	for _, r := range rules {
		if r.When && r.Reason != "" {
			return r.Reason
		}
	}
	return def
}
