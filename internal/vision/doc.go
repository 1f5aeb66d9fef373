// Package vision implements the banana ripeness engine: color masking,
// edge-based separation of touching fruit, watershed segmentation, interior
// spot detection, classification, and aggregation.
//
// # Pipeline
//
// One analysis runs the stages in order:
//
//  1. ColorMasks thresholds the HSV image into disjoint green and yellow
//     masks; BananaMask cleans their union and drops undersized components.
//  2. SeparateEdges finds strong gradients inside the banana mask and carves
//     a thin boundary band out of it, so touching same-colored bananas
//     become separable components.
//  3. Segment runs a distance-transform seeded watershed over the carved
//     mask, producing a label map of individual bananas.
//  4. SpottedYellow / RegionSpotted locate brown spotting in the interior of
//     yellow areas, away from naturally dark tips and edges.
//  5. Classify assigns each unit (pixel or region) one of three ripeness
//     classes; Aggregate turns the tallies into a Summary.
//
// # Determinism
//
// The pipeline contains no randomness. Seed selection, flood ordering, and
// classification ties all resolve by fixed row-major rules, so identical
// input and configuration always produce bit-identical masks, label maps,
// and summaries.
//
// # Concurrency
//
// One analysis is single-threaded and owns all of its grids. Independent
// images may be analyzed concurrently, including with different
// configurations, because no state is shared between calls.
package vision
