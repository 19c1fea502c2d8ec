// Package client contains the client-side transport and local storage
// bootstrap for TalentLedger.
//
// # Overview
//
//  1. Client is the remote marketplace contract consumed by the client
//     services: directory, preferences, balance, grants, usage and photos.
//  2. GRPCClient implements it over the marketv1 gRPC contract. It keeps
//     the signed-in session, attaches the access token to every call and
//     maps gRPC status codes back to the common sentinel errors.
//  3. InitDatabase and RunMigrations open the device-local SQLite store and
//     apply its embedded goose migrations.
//
// # Sessions
//
// Every user-scoped method takes the user id explicitly. GRPCClient refuses
// calls for any user other than the signed-in one with common.ErrAuthRequired.
package client
