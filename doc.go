// Package forcelayout implements a deterministic, synchronous
// force-directed layout engine for 2D graphs and particle systems.
//
// A Simulation owns a set of particles and an insertion-ordered bag of
// forces (Center, PositionX, PositionY, Link, ManyBody, Collide). Each
// call to Step cools the simulation's alpha term, applies every
// registered force once, and integrates velocities into positions.
// ManyBody and Collide approximate their particle-particle
// interactions with a Barnes-Hut quadtree (package
// internal/quadtree); Link, ManyBody and Collide draw jitter from a
// seeded linear congruential generator (package internal/rng), so two
// simulations built with the same seed and the same sequence of
// AddForce calls produce bit-identical position sequences.
package forcelayout
