// Package synth generates reproducible matching scenarios: a random
// multichannel world graph with a planted template whose ground-truth
// placement is known, plus optional structural noise.
//
// Model:
//   - The world has WorldNodes nodes and Channels channels; each ordered
//     node pair (i, j), i ≠ j, carries an edge in each channel
//     independently with probability EdgeProb.
//   - The template is the subgraph induced by the first TmpltNodes world
//     nodes, captured BEFORE noise. Ground truth is therefore the identity
//     prefix mapping, available on the returned scenario.
//   - Noise removes up to NoiseRemovals edges from the world, chosen
//     uniformly. Removals inside the planted region make the scenario a
//     genuine noisy-matching instance: the template then demands edges the
//     world no longer has.
//
// Determinism: all sampling is driven by the configured seed with a fixed
// trial order (channels ascending, then i ascending, then j ascending), so
// equal configurations always produce identical scenarios.
package synth
