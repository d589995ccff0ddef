/*
Package ranger assembles a switchback app and runs its web server.

Construct a [Ranger] with [New], passing a [Config] typed by the app's user,
which implements [middleware.User].
Declare controllers in [*Ranger.Registry], then call [*Ranger.Guide].
Guide calls [*Ranger.Build] when it has not been called yet,
turning the declarations into routes and freezing the Registry.

Guide serves until [*Ranger.Shutdown] is called, the context given to [WithContext] is cancelled,
or the process is signalled to stop.

# Configuration

[Option] values replace individual components.
Everything else is read from environment variables,
which may also be kept in a ".env" file next to the binary, or in the files given to [WithEnvFiles].
Variables already set in the process win over those in files.
Errors from [New] wrap [ErrBadConfig] and name the variable at fault.

	BASE_URL                 URL the app is reached at; default http://localhost:3000
	CONTACT_US_EMAIL         address shown when something goes wrong; default hello@xyplanningnetwork.com
	ENVIRONMENT              cf. [switchback.Environment]; default DEVELOPMENT
	JWT_SIGNING_KEY          key bearer tokens are signed with; bearer tokens are refused without it
	LOG_LEVEL                cf. [logger.LogLevel]; default INFO
	MAINTENANCE_MODE         "true" answers every request with 503
	PORT                     default :3000
	REDIS_URL                Redis holding sessions and idempotent responses; default cookies and memory
	REDIS_PASSWORD           password for REDIS_URL when the URL leaves it out
	SENTRY_DSN               Sentry project errors are reported to
	SERVER_IDLE_TIMEOUT      keep-alive idle limit, cf. [time.ParseDuration]; default 2m
	SERVER_READ_TIMEOUT      request read limit; default 5s
	SERVER_WRITE_TIMEOUT     response write limit; default 5s
	SESSION_AUTH_KEY         hex key authenticating session cookies
	SESSION_ENCRYPTION_KEY   hex key encrypting session cookies
	VIEWS_DIR                directory views are read from when Config.Views is nil; default views

The session keys are required outside DEVELOPMENT, TESTING and DEMO.
*/
package ranger
