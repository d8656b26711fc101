/*
Package timeline resolves "what was true at time t" questions.

Every mutating operation on a persistent tree is stamped with a Timestamp.
Structures which record their history as a sequence of stamped entries
(root tables, fat-node change logs) use Lookup to find the entry in effect
at a given time.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package timeline
