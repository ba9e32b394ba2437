// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package models defines the data structures shared by the Waypoint planning engines
and the HTTP API.

Key Components:

  - Place: a candidate location as returned by the place search collaborator.
    Places are read-only inputs and are never mutated by the engines.
  - UserPreferences: interests, budget band, pace, avoidances, and specific interests.
  - TimeSlot and Clock: the three daily slots and minute-resolution wall-clock times.
  - Activity: a sealed sum type (PlaceVisit, TravelLeg, MealBreak, FreeTime).
  - ItineraryDay and Itinerary: the generated multi-day plan.
  - Cluster: a user-defined group of nearby places.
  - TravelSegment: a point-to-point travel estimate.
  - APIResponse: the standard response envelope.

Times inside a day are Clock values (minutes since midnight) and serialize as
"HH:MM". Calendar dates serialize as "YYYY-MM-DD" through the Date type.
*/
package models
