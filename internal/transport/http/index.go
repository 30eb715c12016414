package http

// indexPage is the built-in web interface, served at GET /.
const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Kodo-Koe — Code to Audio</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
         max-width: 760px; margin: 40px auto; padding: 0 20px; color: #222; }
  h1 { font-size: 1.6em; }
  textarea { width: 100%; min-height: 220px; font-family: 'Monaco', 'Courier New', monospace;
             font-size: 14px; padding: 10px; border: 1px solid #ccc; border-radius: 6px;
             box-sizing: border-box; }
  button { margin-top: 12px; padding: 10px 24px; font-size: 15px; border: none;
           border-radius: 6px; background: #4a5ac8; color: #fff; cursor: pointer; }
  button:disabled { background: #999; }
  #meta { margin-top: 16px; font-size: 14px; color: #444; white-space: pre-wrap; }
  audio { margin-top: 12px; width: 100%; }
</style>
</head>
<body>
<h1>Kodo-Koe</h1>
<p>Paste source code below and listen to a spoken summary of what it does.</p>
<textarea id="code" placeholder="def add(a, b):&#10;    return a + b"></textarea>
<br>
<button id="go">Synthesize</button>
<div id="meta"></div>
<audio id="player" controls hidden></audio>
<script>
const btn = document.getElementById('go');
btn.addEventListener('click', async () => {
  btn.disabled = true;
  const meta = document.getElementById('meta');
  meta.textContent = 'Converting…';
  try {
    const resp = await fetch('/synthesize', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({code: document.getElementById('code').value})
    });
    if (!resp.ok) {
      meta.textContent = 'Error: ' + await resp.text();
      return;
    }
    meta.textContent =
      'Description: ' + resp.headers.get('X-Description') + '\n' +
      'Doc method: ' + resp.headers.get('X-Doc-Method') +
      '  ·  TTS method: ' + resp.headers.get('X-TTS-Method');
    const player = document.getElementById('player');
    player.src = URL.createObjectURL(await resp.blob());
    player.hidden = false;
    player.play();
  } finally {
    btn.disabled = false;
  }
});
</script>
</body>
</html>
`
