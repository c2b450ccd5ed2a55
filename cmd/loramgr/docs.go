package main

// General API documentation for swaggo. The resolver doc is registered by
// internal/httpapi.
//
// @title           loramgr pool resolver API
// @version         1.0
// @description     Resolves LoRA pool filter configs into ordered item lists.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
