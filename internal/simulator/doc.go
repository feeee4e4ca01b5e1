// Package simulator implements the period generator that turns the loaded
// home records into a paced stream of home-sale events.
//
// Each period:
//   - Takes the multiplier at the head of the ring and, with drift enabled,
//     advances the ring (2.0, 4.0, 1.0, 2.0, ...)
//   - Shuffles a copy of all records
//   - Emits every record once with economic_conditions, a noisy scaled price
//     and today's sale_date, sleeping a fixed interval after each
//
// Generation and persistence meet at an iterator boundary: Run drains
// periods into a Sink on the caller's goroutine.
package simulator
